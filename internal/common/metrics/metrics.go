// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TurnsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_turns_processed_total",
			Help: "Total number of conversation turns processed by state",
		},
		[]string{"state"},
	)

	TurnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "chatbot_turn_duration_seconds",
			Help: "Duration of turn processing in seconds",
		},
		[]string{"state"},
	)

	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_extractions_total",
			Help: "Total number of extraction attempts by outcome",
		},
		[]string{"status"},
	)

	ConversationsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatbot_conversations_completed_total",
			Help: "Conversations that reached the ready-to-generate state",
		},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatbot_sessions_active",
			Help: "Number of live conversation sessions",
		},
	)
)
