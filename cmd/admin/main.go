// Command admin logs in to the API and prints the applications dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/mercury-homes/lead-funnel/internal/client"
	"github.com/mercury-homes/lead-funnel/internal/dashboard"
	"github.com/mercury-homes/lead-funnel/internal/pkg/config"
	"github.com/mercury-homes/lead-funnel/pkg/logger"
)

func main() {
	tz := flag.String("tz", "Africa/Nairobi", "timezone used for dates and the today count")
	watch := flag.Duration("watch", 0, "refresh interval; 0 prints once")
	flag.Parse()

	log := logger.Init(logger.Options{Level: "warn", Pretty: true, Service: "admin", Output: os.Stderr})

	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.AdminPassword == "" {
		log.Fatal().Msg("ADMIN_PASSWORD is required")
	}
	loc, err := time.LoadLocation(*tz)
	if err != nil {
		log.Fatal().Err(err).Str("tz", *tz).Msg("unknown timezone")
	}

	ctx := context.Background()
	api := client.New(cfg.APIURL, cfg.HTTPTimeout)
	if err := api.Login(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("login failed")
	}

	for {
		snap, err := refresh(ctx, api, cfg.AdminUsername, cfg.AdminPassword, time.Now().In(loc))
		if err != nil {
			log.Error().Err(err).Msg("session expired and login failed")
		}
		if err := dashboard.Render(os.Stdout, snap, loc); err != nil {
			log.Fatal().Err(err).Msg("render failed")
		}
		if *watch <= 0 {
			return
		}
		time.Sleep(*watch)
		fmt.Fprintln(os.Stdout)
	}
}

type adminAPI interface {
	dashboard.Lister
	Login(ctx context.Context, username, password string) error
}

// refresh fetches a snapshot. When either list is rejected because the token
// expired it logs in again and fetches once more.
func refresh(ctx context.Context, api adminAPI, username, password string, now time.Time) (dashboard.Snapshot, error) {
	snap := dashboard.Fetch(ctx, api, now)
	if !client.IsUnauthorized(snap.Renters.Err) && !client.IsUnauthorized(snap.Landlords.Err) {
		return snap, nil
	}
	if err := api.Login(ctx, username, password); err != nil {
		return snap, err
	}
	return dashboard.Fetch(ctx, api, now), nil
}
