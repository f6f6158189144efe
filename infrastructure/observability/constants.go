package observability

// Metric name prefixes
const (
	MetricPrefix = "croulette"
)

// Metric names
const (
	// Command metrics
	CommandsTotal          = MetricPrefix + ".commands.total"
	CommandRejectionsTotal = MetricPrefix + ".commands.rejections_total"

	// Roulette metrics
	SpinsTotal   = MetricPrefix + ".roulette.spins_total"
	WageredTotal = MetricPrefix + ".roulette.wagered_total"
	PayoutsTotal = MetricPrefix + ".roulette.payouts_total"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"

	// Balance metrics
	BalanceTransactionsTotal = MetricPrefix + ".balance.transactions_total"
)

// Label keys
const (
	LabelPlatform = "platform"
	LabelType     = "type"
	LabelOutcome  = "outcome"
	LabelBet      = "bet"
	LabelReason   = "reason"
	LabelSubject  = "subject"
)

// Rejection reasons
const (
	RejectionThrottled     = "throttled"
	RejectionNotEnough     = "not_enough"
	RejectionCooldown      = "cooldown"
	RejectionInvalidBet    = "invalid_bet"
	RejectionInternalError = "error"
)
