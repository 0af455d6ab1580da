// Package main provides a CLI that fills a team with fixture participants
// for rehearsals, or removes them again.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	appconfig "github.com/festy23/hackathon_teams/internal/config"
	dbconfig "github.com/festy23/hackathon_teams/internal/database/config"
	"github.com/festy23/hackathon_teams/internal/database/database"
	"github.com/festy23/hackathon_teams/internal/database/migrate"
	"github.com/festy23/hackathon_teams/internal/fixture"
	"github.com/festy23/hackathon_teams/internal/membership"
	"github.com/festy23/hackathon_teams/internal/notify"
	participantRepository "github.com/festy23/hackathon_teams/internal/participant/repository"
	participantService "github.com/festy23/hackathon_teams/internal/participant/service"
	"github.com/festy23/hackathon_teams/internal/schema"
	teamRepository "github.com/festy23/hackathon_teams/internal/team/repository"
	teamService "github.com/festy23/hackathon_teams/internal/team/service"
	"github.com/festy23/hackathon_teams/pkg/logger"
)

func main() {
	teamName := flag.String("team", "", "name of the team to fill (required)")
	file := flag.String("fixtures", "configs/fixtures.yaml", "fixture file")
	remove := flag.Bool("remove", false, "remove the fixture participants instead of adding them")
	flag.Parse()

	if *teamName == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(*teamName, *file, *remove); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run(teamName, file string, remove bool) error {
	appconfig.LoadDotEnv()
	cfg := appconfig.LoadFromEnv()
	dbCfg := dbconfig.LoadConfigFromEnv()

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	fixtures, err := fixture.Load(file)
	if err != nil {
		return err
	}

	ctx := context.Background()
	db, err := database.New(ctx, dbCfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()
	if err := migrate.Migrate(db, dbCfg.MigrationsPath, log); err != nil {
		return err
	}

	store, err := schema.NewStore(cfg.SchemaPath, log)
	if err != nil {
		return err
	}

	teamRepo := teamRepository.New(db, log)
	teams := teamService.New(teamRepo, db, log)
	// Fixture addresses are not real mailboxes.
	participants := participantService.New(participantRepository.New(db, log), store,
		membership.NewDirectory(teamRepo, log), notify.Nop{}, log)
	seeder := fixture.NewSeeder(participants, teams, log)

	var report *fixture.Report
	if remove {
		report, err = seeder.Remove(ctx, teamName, fixtures.Participants)
	} else {
		report, err = seeder.Add(ctx, teamName, fixtures.Participants)
	}
	if err != nil {
		return err
	}

	verb := "added"
	if remove {
		verb = "removed"
	}
	fmt.Printf("%s: %d %s, %d members now\n", report.Team, len(report.Changed), verb, report.Members)
	for email, code := range report.Skipped {
		fmt.Printf("  skipped %s (%s)\n", email, code)
	}
	return nil
}
