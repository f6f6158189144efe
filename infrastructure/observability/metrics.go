package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"croulette/config"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

// MetricsProvider manages OpenTelemetry metrics. A nil provider records nothing.
type MetricsProvider struct {
	config        *config.Config
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	initialized   bool
	enabled       bool
	mu            sync.RWMutex

	// Metric instruments
	commandsCounter              metric.Int64Counter
	rejectionsCounter            metric.Int64Counter
	spinsCounter                 metric.Int64Counter
	wageredCounter               metric.Int64Counter
	payoutsCounter               metric.Int64Counter
	natsMessagesPublishedCounter metric.Int64Counter
	balanceTransactionsCounter   metric.Int64Counter
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(cfg *config.Config) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
	}
}

// Initialize sets up the OpenTelemetry metrics provider
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	if !mp.config.OTelEnabled {
		log.Info("OpenTelemetry metrics disabled")
		mp.markInitialized(false)
		return nil
	}

	var reader sdkmetric.Reader
	interval := time.Duration(mp.config.OTelExportIntervalMillis) * time.Millisecond

	switch mp.config.OTelExporterType {
	case "console":
		exporter, err := stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("failed to create console exporter: %w", err)
		}
		reader = sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))
		log.Info("Using console metric exporter")

	case "otlp":
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		exporter, err := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(mp.config.OTelOTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		reader = sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))
		log.WithField("endpoint", mp.config.OTelOTLPEndpoint).Info("Using OTLP metric exporter")

	case "none":
		log.Info("Metrics export disabled (exporter_type='none')")
		mp.markInitialized(false)
		return nil

	default:
		return fmt.Errorf("unknown exporter type: %s", mp.config.OTelExporterType)
	}

	return mp.InitializeWithReader(reader)
}

// InitializeWithReader wires the provider to an explicit reader
func (mp *MetricsProvider) InitializeWithReader(reader sdkmetric.Reader) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		log.Debug("Metrics provider already initialized")
		return nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(mp.config.OTelServiceName),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	mp.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	otel.SetMeterProvider(mp.meterProvider)
	mp.meter = mp.meterProvider.Meter("croulette")

	if err := mp.createInstruments(); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	mp.initialized = true
	mp.enabled = true
	log.Info("Metrics provider initialized successfully")
	return nil
}

func (mp *MetricsProvider) markInitialized(enabled bool) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.initialized = true
	mp.enabled = enabled
}

// createInstruments creates all metric instruments
func (mp *MetricsProvider) createInstruments() error {
	counters := []struct {
		target      *metric.Int64Counter
		name        string
		description string
		unit        string
	}{
		{&mp.commandsCounter, CommandsTotal, "Total number of game commands handled", "1"},
		{&mp.rejectionsCounter, CommandRejectionsTotal, "Total number of game commands rejected", "1"},
		{&mp.spinsCounter, SpinsTotal, "Total number of roulette spins", "1"},
		{&mp.wageredCounter, WageredTotal, "Total currency wagered on spins", "{currency}"},
		{&mp.payoutsCounter, PayoutsTotal, "Total currency paid out on winning spins", "{currency}"},
		{&mp.natsMessagesPublishedCounter, NATSMessagesPublishedTotal, "Total number of NATS messages published", "1"},
		{&mp.balanceTransactionsCounter, BalanceTransactionsTotal, "Total number of balance transactions", "1"},
	}

	for _, c := range counters {
		counter, err := mp.meter.Int64Counter(c.name,
			metric.WithDescription(c.description),
			metric.WithUnit(c.unit),
		)
		if err != nil {
			return fmt.Errorf("failed to create %s counter: %w", c.name, err)
		}
		*c.target = counter
	}
	return nil
}

// Shutdown flushes and shuts down the metrics provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	if mp == nil {
		return nil
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}

// RecordCommand records a game command being handled
func (mp *MetricsProvider) RecordCommand(platform string) {
	if !mp.isEnabled() {
		return
	}
	mp.commandsCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelPlatform, platform)),
	)
}

// RecordRejection records a command that did not result in a spin
func (mp *MetricsProvider) RecordRejection(platform, reason string) {
	if !mp.isEnabled() {
		return
	}
	mp.rejectionsCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(LabelPlatform, platform),
			attribute.String(LabelReason, reason),
		),
	)
}

// RecordSpin records a settled spin with its stake and payout
func (mp *MetricsProvider) RecordSpin(platform, bet, outcome string, cost, payout int64) {
	if !mp.isEnabled() {
		return
	}
	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String(LabelPlatform, platform),
		attribute.String(LabelBet, bet),
		attribute.String(LabelOutcome, outcome),
	)

	mp.spinsCounter.Add(ctx, 1, attrs)
	if cost > 0 {
		mp.wageredCounter.Add(ctx, cost, attrs)
	}
	if payout > 0 {
		mp.payoutsCounter.Add(ctx, payout, attrs)
	}
}

// RecordNATSMessagePublished records a message published to NATS
func (mp *MetricsProvider) RecordNATSMessagePublished(subject string) {
	if !mp.isEnabled() {
		return
	}
	mp.natsMessagesPublishedCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelSubject, subject)),
	)
}

// RecordBalanceTransaction records a balance transaction
func (mp *MetricsProvider) RecordBalanceTransaction(transactionType string) {
	if !mp.isEnabled() {
		return
	}
	mp.balanceTransactionsCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelType, transactionType)),
	)
}

// isEnabled checks if metrics are enabled and initialized
func (mp *MetricsProvider) isEnabled() bool {
	if mp == nil {
		return false
	}
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.initialized && mp.enabled
}
