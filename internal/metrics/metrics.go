package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CallsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "interview_calls_active",
		Help: "Currently active interview call attempts",
	})

	CallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interview_calls_total",
		Help: "Interview call attempts by mode",
	}, []string{"mode"})

	CallErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interview_call_errors_total",
		Help: "Voice agent errors that reset an attempt",
	})

	FeedbackGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feedback_generated_total",
		Help: "Feedback records persisted",
	})

	FeedbackFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feedback_fallbacks_total",
		Help: "Feedback generations that used the canned fallback payload",
	})

	ModelDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "feedback_model_duration_seconds",
		Help:    "Latency of the hosted model call",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
	})
)
