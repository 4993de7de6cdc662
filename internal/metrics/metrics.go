// Package metrics holds the Prometheus collectors for the search and delivery pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search outcomes
const (
	OutcomeNone   = "none"
	OutcomeSingle = "single"
	OutcomeMulti  = "multi"
	OutcomeError  = "error"
)

var (
	// FilesIndexed counts successful index upserts.
	FilesIndexed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "autofilter_files_indexed_total",
		Help: "Number of media files indexed from the source channel",
	})

	// IndexFailures counts store write failures while indexing.
	IndexFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "autofilter_index_failures_total",
		Help: "Number of media files that failed to index",
	})

	// Searches counts searches by outcome.
	Searches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autofilter_searches_total",
		Help: "Number of searches by outcome",
	}, []string{"outcome"})

	// Deliveries counts payload messages sent, by kind.
	Deliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autofilter_deliveries_total",
		Help: "Number of files delivered to users by kind",
	}, []string{"kind"})

	// Cleanups counts deferred deletions by result.
	Cleanups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autofilter_cleanup_deletions_total",
		Help: "Number of deferred message deletions by result",
	}, []string{"result"})

	// AdminDenied counts rejected admin commands.
	AdminDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autofilter_admin_denied_total",
		Help: "Number of admin commands rejected by authorization",
	}, []string{"command"})
)
