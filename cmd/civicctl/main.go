// Command civicctl is a staff console for the civictrack API: it signs in,
// watches the role dashboard and updates complaint status.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"civictrack.org/internal/auth"
	"civictrack.org/internal/poll"
)

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return errors.New("usage: civicctl [-addr URL] [-email E] [-password P] login | watch [-status S] [-interval D] | status ID STATUS [NOTES] | track ID")
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("civicctl", flag.ContinueOnError)
	addr := fs.String("addr", envOr("CIVICTRACK_ADDR", "http://localhost:8080"), "API base URL")
	email := fs.String("email", os.Getenv("CIVICTRACK_EMAIL"), "staff email")
	password := fs.String("password", os.Getenv("CIVICTRACK_PASSWORD"), "staff password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return usage()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := newClient(*addr, nil)
	if err != nil {
		return err
	}

	switch fs.Arg(0) {
	case "login":
		role, err := c.login(ctx, *email, *password)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		fmt.Fprintf(out, "signed in as %s (%s)\n", *email, role)
		return nil
	case "track":
		if fs.NArg() != 2 {
			return usage()
		}
		v, err := c.track(ctx, fs.Arg(1))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s ward=%d %s status=%s age=%dd breached=%v\n",
			v.ComplaintID, v.Ward, v.Category, v.Status, v.AgeInDays, v.IsBreached)
		return nil
	case "status":
		if fs.NArg() < 3 {
			return usage()
		}
		if _, err := c.login(ctx, *email, *password); err != nil {
			return fmt.Errorf("login: %w", err)
		}
		var notes *string
		if fs.NArg() > 3 {
			n := fs.Arg(3)
			notes = &n
		}
		v, err := c.setStatus(ctx, fs.Arg(1), fs.Arg(2), notes)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s -> %s\n", v.ComplaintID, v.Status)
		return nil
	case "watch":
		wfs := flag.NewFlagSet("watch", flag.ContinueOnError)
		status := wfs.String("status", "", "officer status filter")
		interval := wfs.Duration("interval", poll.DefaultInterval, "refresh interval")
		if err := wfs.Parse(fs.Args()[1:]); err != nil {
			return err
		}
		role, err := c.login(ctx, *email, *password)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		p := poll.New(*interval, func(ctx context.Context) error {
			return c.printDashboard(ctx, out, role, *status)
		}, poll.WithTimeout(*interval), poll.WithErrorHandler(func(err error) {
			fmt.Fprintf(out, "refresh failed: %v\n", err)
		}))
		return p.Run(ctx)
	default:
		return usage()
	}
}

// printDashboard renders one refresh of the signed-in role's dashboard.
func (c *client) printDashboard(ctx context.Context, out io.Writer, role auth.Role, status string) error {
	stamp := time.Now().Format(time.TimeOnly)
	return auth.MatchRole(role,
		func(auth.Admin) error {
			o, err := c.adminOverview(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "[%s] total=%d open=%d resolved=%d breached=%d\n", stamp, o.Total, o.Open, o.Resolved, o.Breached)
			for _, w := range o.ByWard {
				attention := ""
				if w.NeedsAttention {
					attention = " !"
				}
				fmt.Fprintf(out, "  ward %d: %d total, %d%% resolved, %d breached%s\n", w.Ward, w.Total, w.ResolutionRate, w.Breached, attention)
			}
			return nil
		},
		func(auth.Officer) error {
			d, err := c.officerDashboard(ctx, status)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "[%s] ward %d: total=%d open=%d breached=%d\n", stamp, d.Ward, d.Stats.Total, d.Stats.Open, d.Stats.Breached)
			for _, v := range d.Complaints {
				mark := " "
				if v.IsBreached {
					mark = "!"
				}
				fmt.Fprintf(out, " %s %s %-11s %-11s %dd %s\n", mark, v.ID, v.Status, v.Category, v.AgeInDays, v.ComplaintID)
			}
			return nil
		},
		func(auth.Citizen) error {
			return fmt.Errorf("role %s has no dashboard", auth.RoleCitizen)
		},
	)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
