package complaint

import "sort"

// RecentLimit is how many of the newest complaints the overview carries.
const RecentLimit = 5

// WardStats summarizes one ward.
type WardStats struct {
	Ward           int  `json:"ward"`
	Total          int  `json:"total"`
	Resolved       int  `json:"resolved"`
	Breached       int  `json:"breached"`
	ResolutionRate int  `json:"resolutionRate"`
	NeedsAttention bool `json:"needsAttention"`
}

// Overview is the admin aggregate. Resolved counts RESOLVED and CLOSED.
type Overview struct {
	Total      int            `json:"total"`
	Resolved   int            `json:"resolved"`
	Open       int            `json:"open"`
	Breached   int            `json:"breached"`
	ByCategory map[string]int `json:"byCategory"`
	ByStatus   map[Status]int `json:"byStatus"`
	ByWard     []WardStats    `json:"byWard"`
	Recent     []View         `json:"recent"`
}

// OfficerStats are the officer dashboard headline counts.
type OfficerStats struct {
	Total    int `json:"total"`
	Open     int `json:"open"`
	Breached int `json:"breached"`
}

// OfficerDashboard is one officer's ward view.
type OfficerDashboard struct {
	Ward       int          `json:"ward"`
	Complaints []View       `json:"complaints"`
	Stats      OfficerStats `json:"stats"`
}

// Summarize projects evaluated complaints (newest first) into an Overview.
// Nothing is cached; every call rescans.
func Summarize(views []View) Overview {
	o := Overview{
		Total:      len(views),
		ByCategory: make(map[string]int),
		ByStatus:   make(map[Status]int),
		ByWard:     []WardStats{},
	}
	wards := make(map[int]*WardStats)
	for _, v := range views {
		ws, ok := wards[v.Ward]
		if !ok {
			ws = &WardStats{Ward: v.Ward}
			wards[v.Ward] = ws
		}
		ws.Total++
		o.ByCategory[v.Category]++
		o.ByStatus[v.Status]++
		if v.Status.Terminal() {
			o.Resolved++
			ws.Resolved++
		}
		if v.Status == StatusOpen {
			o.Open++
		}
		if v.IsBreached {
			o.Breached++
			ws.Breached++
		}
	}
	for _, ws := range wards {
		if ws.Total > 0 {
			ws.ResolutionRate = (ws.Resolved*100 + ws.Total/2) / ws.Total
		}
		ws.NeedsAttention = ws.Breached > 0
		o.ByWard = append(o.ByWard, *ws)
	}
	sort.Slice(o.ByWard, func(i, j int) bool { return o.ByWard[i].Ward < o.ByWard[j].Ward })

	n := len(views)
	if n > RecentLimit {
		n = RecentLimit
	}
	o.Recent = append([]View{}, views[:n]...)
	return o
}

func officerStats(views []View) OfficerStats {
	st := OfficerStats{Total: len(views)}
	for _, v := range views {
		if v.Status == StatusOpen {
			st.Open++
		}
		if v.IsBreached {
			st.Breached++
		}
	}
	return st
}
