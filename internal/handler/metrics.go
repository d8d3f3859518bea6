package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tracking_service",
			Subsystem: "kafka_consumer",
			Name:      "events_processed_total",
			Help:      "Total number of successfully processed tracking events",
		},
	)

	eventsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tracking_service",
			Subsystem: "kafka_consumer",
			Name:      "events_failed_total",
			Help:      "Total number of failed tracking event processing attempts",
		},
	)

	eventsDLQ = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tracking_service",
			Subsystem: "kafka_consumer",
			Name:      "events_dlq_total",
			Help:      "Total number of tracking events written to DLQ",
		},
	)

	commitErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tracking_service",
			Subsystem: "kafka_consumer",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)

	eventProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "tracking_service",
			Subsystem: "kafka_consumer",
			Name:      "event_processing_duration_seconds",
			Help:      "Histogram of tracking event processing durations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)
