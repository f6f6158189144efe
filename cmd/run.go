package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"croulette/api"
	"croulette/application"
	"croulette/bot"
	"croulette/config"
	"croulette/database"
	"croulette/events"
	"croulette/infrastructure"
	"croulette/infrastructure/observability"
	"croulette/repository"
	"croulette/roulette"
	"croulette/service"
	"croulette/settings"
	"croulette/telegram"

	log "github.com/sirupsen/logrus"
)

// cooldownCleanupInterval is how often expired cooldowns are purged
const cooldownCleanupInterval = time.Minute

// ConfigureLogging applies the configured level and format to the global logger
func ConfigureLogging(cfg *config.Config) error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)

	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}
	return nil
}

// Run initializes and starts the application
func Run(ctx context.Context, cfg *config.Config) error {
	log.Info("Starting croulette...")

	// Load the game command settings. A broken file falls back to defaults.
	gameSettings, _ := settings.LoadOrDefault(cfg.SettingsFile)
	log.WithFields(log.Fields{
		"command":  gameSettings.Command(),
		"currency": gameSettings.CurrencyName(),
		"cost":     gameSettings.Cost(),
		"cooldown": gameSettings.UserCooldown(),
	}).Info("Game settings loaded")

	// Initialize metrics
	metrics := observability.NewMetricsProvider(cfg)
	if err := metrics.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	// Initialize database connection
	databaseURL := cfg.GetDatabaseURL()
	log.Info("Running database migrations...")
	if err := database.MigrateUp(databaseURL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()
	eventBus.Subscribe(events.EventTypeBalanceChange, func(_ context.Context, event events.Event) {
		if e, ok := event.(events.BalanceChangeEvent); ok {
			metrics.RecordBalanceTransaction(string(e.TransactionType))
		}
	})

	// Forward events to NATS when configured
	var natsClient *infrastructure.NATSClient
	if servers := cfg.NATSServerList(); len(servers) > 0 {
		natsClient, err = setupNATS(ctx, servers, eventBus, metrics)
		if err != nil {
			return err
		}
	}

	// Initialize the game
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
	command := application.NewRouletteCommand(application.RouletteCommandDeps{
		UoWFactory:      uowFactory,
		Settings:        gameSettings,
		Cooldowns:       service.NewCooldownCache(cooldownCleanupInterval),
		Spinner:         roulette.NewRandomSpinner(),
		Throttle:        application.NewScopeThrottle(cfg.CommandRateLimit, cfg.CommandRateBurst),
		StartingBalance: cfg.StartingBalance,
		Metrics:         metrics,
	})
	queries := application.NewPlayerQueries(uowFactory, cfg.StartingBalance)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	var wg sync.WaitGroup

	// Initialize Discord bot
	var discordBot *bot.Bot
	if cfg.DiscordToken != "" {
		log.Info("Initializing Discord bot...")
		discordBot, err = bot.New(bot.Config{Token: cfg.DiscordToken}, command, queries)
		if err != nil {
			return fmt.Errorf("failed to initialize Discord bot: %w", err)
		}
		log.Info("Discord bot initialized successfully")
	}

	// Initialize Telegram bot
	if cfg.TelegramToken != "" {
		log.Info("Initializing Telegram bot...")
		telegramBot, err := telegram.New(cfg.TelegramToken, command, queries)
		if err != nil {
			closeDiscord(discordBot)
			return fmt.Errorf("failed to initialize Telegram bot: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			telegramBot.Run(runCtx)
		}()
		log.Info("Telegram bot started")
	}

	// Start the HTTP API
	apiErr := make(chan error, 1)
	if cfg.DebugAPIAddr != "" {
		server := api.NewServer(gameSettings, queries)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := server.ListenAndServe(runCtx, cfg.DebugAPIAddr); err != nil {
				apiErr <- err
			}
		}()
	}

	// Wait for context cancellation
	log.WithField("environment", cfg.Environment).Info("Bot is running")
	var runErr error
	select {
	case <-ctx.Done():
	case err := <-apiErr:
		runErr = fmt.Errorf("HTTP API failed: %w", err)
	}

	// Cleanup resources
	log.Info("Shutting down...")
	cancel()
	closeDiscord(discordBot)
	wg.Wait()

	if natsClient != nil {
		if err := natsClient.Close(); err != nil {
			log.WithError(err).Warn("Error closing NATS connection")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := metrics.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("Error shutting down metrics")
	}

	log.Info("Shutdown completed")
	return runErr
}

func setupNATS(ctx context.Context, servers []string, bus *events.Bus, metrics *observability.MetricsProvider) (*infrastructure.NATSClient, error) {
	log.WithField("servers", servers).Info("Connecting to NATS...")
	client := infrastructure.NewNATSClient(servers)
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	mapper := infrastructure.NewEventSubjectMapper()
	if err := client.EnsureEventStream(mapper.GetAllSubjects()); err != nil {
		closeErr := client.Close()
		return nil, errors.Join(fmt.Errorf("failed to set up event stream: %w", err), closeErr)
	}

	infrastructure.NewEventForwarder(client, mapper, metrics).Register(bus)
	log.Info("Event forwarding to NATS enabled")
	return client, nil
}

func closeDiscord(b *bot.Bot) {
	if b == nil {
		return
	}
	if err := b.Close(); err != nil {
		log.WithError(err).Warn("Error closing Discord bot")
	}
}
