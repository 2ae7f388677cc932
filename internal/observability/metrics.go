package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RewardsMetrics holds the engine's Prometheus instruments.
type RewardsMetrics struct {
	eventsProcessed   *prometheus.CounterVec
	eventsRejected    *prometheus.CounterVec
	streakResets      prometheus.Counter
	rankPromotions    prometheus.Counter
	operationDuration *prometheus.HistogramVec
	leaderboardSize   prometheus.Gauge
}

// NewRewardsMetrics registers the engine instruments on the given registry.
func NewRewardsMetrics(registry *prometheus.Registry) *RewardsMetrics {
	m := &RewardsMetrics{
		eventsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rewards_events_processed_total",
			Help: "Action events fully applied, by action type.",
		}, []string{"action_type"}),
		eventsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rewards_events_rejected_total",
			Help: "Action events rejected, by reason.",
		}, []string{"reason"}),
		streakResets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rewards_streak_resets_total",
			Help: "Streaks broken and restarted at 1.",
		}),
		rankPromotions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rewards_rank_promotions_total",
			Help: "Events that moved an account across a rank boundary.",
		}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rewards_operation_duration_seconds",
			Help:    "Duration of service operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		leaderboardSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rewards_leaderboard_accounts",
			Help: "Accounts currently ranked on the leaderboard.",
		}),
	}

	if registry != nil {
		registry.MustRegister(
			m.eventsProcessed,
			m.eventsRejected,
			m.streakResets,
			m.rankPromotions,
			m.operationDuration,
			m.leaderboardSize,
		)
	}
	return m
}

// NewTestRewardsMetrics returns unregistered instruments for tests.
func NewTestRewardsMetrics() *RewardsMetrics {
	return NewRewardsMetrics(nil)
}

// RecordEventProcessed counts a fully applied event.
func (m *RewardsMetrics) RecordEventProcessed(actionType string) {
	m.eventsProcessed.WithLabelValues(actionType).Inc()
}

// RecordEventRejected counts a rejected event by reason.
func (m *RewardsMetrics) RecordEventRejected(reason string) {
	m.eventsRejected.WithLabelValues(reason).Inc()
}

// RecordStreakReset counts a broken-and-restarted streak.
func (m *RewardsMetrics) RecordStreakReset() {
	m.streakResets.Inc()
}

// RecordRankPromotion counts a tier boundary crossing.
func (m *RewardsMetrics) RecordRankPromotion() {
	m.rankPromotions.Inc()
}

// RecordOperationDuration observes one service operation.
func (m *RewardsMetrics) RecordOperationDuration(operation string, d time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// SetLeaderboardSize records the current ranked-account count.
func (m *RewardsMetrics) SetLeaderboardSize(n int) {
	m.leaderboardSize.Set(float64(n))
}
