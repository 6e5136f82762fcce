package repository

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	kindList = "list"
	kindInfo = "info"

	sourceStore   = "store"
	sourceNetwork = "network"
)

var (
	// FetchTotal counts successful fetches by kind and where they were served from
	FetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pokedex_fetch_total",
			Help: "Total number of catalog fetches",
		},
		[]string{"kind", "source"}, // "list"|"info", "store"|"network"
	)

	// FetchErrors counts failed fetches by kind
	FetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pokedex_fetch_errors_total",
			Help: "Total number of failed catalog fetches",
		},
		[]string{"kind"},
	)

	// FetchDuration tracks end-to-end fetch latency by kind
	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pokedex_fetch_duration_seconds",
			Help:    "Catalog fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
)
