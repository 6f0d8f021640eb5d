package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPRequests counts handled HTTP requests by method, route and status.
var HTTPRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "walletcontrol_http_requests_total",
		Help: "Total HTTP requests processed.",
	},
	[]string{"method", "route", "status"},
)

// LedgerMutations counts balance-affecting transaction writes by operation.
var LedgerMutations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "walletcontrol_ledger_mutations_total",
		Help: "Total ledger mutations (transaction create/update/delete).",
	},
	[]string{"operation"},
)

// AggregatorQueries counts category-sum aggregations by bucket.
var AggregatorQueries = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "walletcontrol_aggregator_queries_total",
		Help: "Total category aggregation queries.",
	},
	[]string{"bucket"},
)
