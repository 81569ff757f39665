package complaint

import "time"

// BreachThresholdDays is the age at which an unresolved complaint breaches its SLA.
const BreachThresholdDays = 3

const day = 24 * time.Hour

// SLA is derived on every read and never stored.
type SLA struct {
	AgeInDays  int  `json:"ageInDays"`
	IsBreached bool `json:"isBreached"`
}

// BreachStatus computes whole days elapsed since createdAt and whether the
// complaint has breached. A createdAt in the future counts as age zero.
func BreachStatus(createdAt time.Time, status Status, now time.Time) SLA {
	elapsed := now.Sub(createdAt)
	age := 0
	if elapsed > 0 {
		age = int(elapsed / day)
	}
	return SLA{
		AgeInDays:  age,
		IsBreached: age >= BreachThresholdDays && !status.Terminal(),
	}
}

// Evaluate returns c with its SLA state as of now.
func Evaluate(c Complaint, now time.Time) View {
	return View{Complaint: c, SLA: BreachStatus(c.CreatedAt, c.Status, now)}
}
