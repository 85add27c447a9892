package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// documentOps counts document store operations by outcome, exposed at
// /metrics. Request-level metrics live in the middleware package; this
// counter tracks the storage boundary specifically, so a failing backend is
// visible even when the HTTP layer reports it as a plain 500.
var documentOps = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "medidas_document_operations_total",
		Help: "Document store load/save operations by outcome.",
	},
	[]string{"operation", "outcome"},
)
