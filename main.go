package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"croulette/cmd"
	"croulette/config"
	"croulette/database"
	"croulette/roulette"
	"croulette/settings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).Warn("Failed to load .env file")
	}

	app := kingpin.New("croulette", "Casino-style roulette chat command for Discord and Telegram")

	runCmd := app.Command("run", "Run the chat bots").Default()

	migrateCmd := app.Command("migrate", "Manage the database schema")
	databaseURL := migrateCmd.Flag("database-url", "PostgreSQL connection URL").Envar("DATABASE_URL").Required().String()
	databaseName := migrateCmd.Flag("database-name", "Database name overriding the one in the URL").Envar("DATABASE_NAME").String()
	migrateUpCmd := migrateCmd.Command("up", "Apply all pending migrations")
	migrateDownCmd := migrateCmd.Command("down", "Roll back migrations")
	downSteps := migrateDownCmd.Arg("steps", "Number of migrations to roll back").Default("1").Int()
	migrateStatusCmd := migrateCmd.Command("status", "Show the current schema version")

	settingsCmd := app.Command("settings", "Inspect game command settings")
	settingsCheckCmd := settingsCmd.Command("check", "Validate a settings file")
	checkFile := settingsCheckCmd.Arg("file", "Settings file (.json, .yaml or .js)").Required().ExistingFile()
	settingsDefaultsCmd := settingsCmd.Command("defaults", "Print the default settings")
	defaultsFormat := settingsDefaultsCmd.Flag("format", "Output format").Default(settings.FormatJSON).Enum(settings.FormatJSON, settings.FormatYAML)

	oddsCmd := app.Command("odds", "Print the odds of every bet and check them against a simulated wheel")
	oddsTrials := oddsCmd.Flag("trials", "Simulated spins per bet (0 skips the simulation)").Default("100000").Int()
	oddsSeed := oddsCmd.Flag("seed", "Seed for the simulated wheel (0 seeds from the clock)").Int64()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	var err error
	switch command {
	case runCmd.FullCommand():
		err = run()
	case migrateUpCmd.FullCommand():
		err = database.MigrateUp(database.ConstructDatabaseURL(*databaseURL, *databaseName))
	case migrateDownCmd.FullCommand():
		err = database.MigrateDown(database.ConstructDatabaseURL(*databaseURL, *databaseName), *downSteps)
	case migrateStatusCmd.FullCommand():
		err = migrateStatus(database.ConstructDatabaseURL(*databaseURL, *databaseName))
	case settingsCheckCmd.FullCommand():
		err = checkSettings(*checkFile)
	case settingsDefaultsCmd.FullCommand():
		err = printDefaults(*defaultsFormat)
	case oddsCmd.FullCommand():
		printOdds(*oddsTrials, *oddsSeed)
	}
	if err != nil {
		log.WithError(err).Fatal("Command failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cmd.ConfigureLogging(cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	return cmd.Run(ctx, cfg)
}

func migrateStatus(databaseURL string) error {
	status, err := database.MigrateStatus(databaseURL)
	if err != nil {
		return err
	}
	if !status.Applied {
		fmt.Println("No migrations applied")
		return nil
	}
	fmt.Printf("Version: %d, dirty: %t\n", status.Version, status.Dirty)
	return nil
}

func checkSettings(path string) error {
	cfg, err := settings.Load(path)
	if err != nil {
		return err
	}
	fmt.Printf("%s is valid: %s costs %d %s, cooldown %s\n",
		path, cfg.Command(), cfg.Cost(), cfg.CurrencyName(), cfg.UserCooldown())
	return nil
}

func printDefaults(format string) error {
	out, err := settings.Marshal(settings.Defaults(), format)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func printOdds(trials int, seed int64) {
	spinner := roulette.NewRandomSpinner()
	if seed != 0 {
		spinner = roulette.NewSeededSpinner(seed)
	}

	for _, bet := range roulette.AllBets() {
		odds := roulette.Analyze(bet)
		fmt.Printf("%-3s pays %2d:1 on %2d/%d pockets | p=%.4f | EV %+.4f",
			bet, odds.Multiplier, odds.WinningPockets, len(roulette.Wheel), odds.WinProbability, odds.ExpectedReturn)
		if trials > 0 {
			sim := roulette.Simulate(spinner, bet, trials)
			fmt.Printf(" | simulated %.4f (%+.4f) χ² %.2f", sim.WinRate, sim.Deviation, sim.ChiSquared)
		}
		fmt.Println()
	}
}
