package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"civictrack.org/internal/auth"
	"civictrack.org/internal/config"
	"civictrack.org/internal/migrate"
	pgstore "civictrack.org/internal/store/pg"
)

func main() {
	log.SetFlags(0)
	dsn := flag.String("dsn", "", "PostgreSQL DSN (defaults to DATABASE_URL)")
	flag.Parse()

	if len(flag.Args()) == 0 {
		log.Fatal("usage: migrate [-dsn DSN] up|down|status|seed")
	}

	cfg, err := config.LoadTooling()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *dsn == "" {
		*dsn = cfg.DatabaseURL
	}
	if *dsn == "" {
		log.Fatal("missing DSN: provide via -dsn or DATABASE_URL")
	}

	cmd := flag.Arg(0)
	if cmd == "seed" {
		if err := seed(*dsn, cfg); err != nil {
			log.Fatalf("migrate seed: %v", err)
		}
		return
	}

	mgr, err := migrate.NewManager(*dsn)
	if err != nil {
		log.Fatalf("open migrations: %v", err)
	}
	defer mgr.Close()

	switch cmd {
	case "up":
		err = mgr.Up()
	case "down":
		err = mgr.Down()
	case "status":
		var status string
		status, err = mgr.Status()
		if err == nil {
			fmt.Println(status)
		}
	default:
		log.Fatalf("unknown command %q", cmd)
	}
	if err != nil {
		log.Fatalf("migrate %s: %v", cmd, err)
	}
}

// seed creates the bootstrap administrator unless the email already exists.
func seed(dsn string, cfg *config.Config) error {
	if cfg.BootstrapAdminEmail == "" || cfg.BootstrapAdminPassword == "" {
		return fmt.Errorf("BOOTSTRAP_ADMIN_EMAIL and BOOTSTRAP_ADMIN_PASSWORD are required")
	}
	st, err := pgstore.Open(dsn)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, created, err := auth.EnsureAdmin(ctx, st, auth.NewHasher(cfg.BcryptCost), auth.AdminInput{
		Name:     cfg.BootstrapAdminName,
		Email:    cfg.BootstrapAdminEmail,
		Password: cfg.BootstrapAdminPassword,
	})
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("created admin %s (%s)\n", user.Email, user.ID)
	} else {
		fmt.Printf("admin %s already exists\n", user.Email)
	}
	return nil
}
