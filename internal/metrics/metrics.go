// Package metrics объявляет счётчики Prometheus для операций реестра.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MintsTotal считает попытки выпуска токенов по исходу.
	MintsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "membership_mints_total",
			Help: "Total number of mint attempts by outcome",
		},
		[]string{"outcome"},
	)

	// RechargesTotal считает попытки продления по исходу.
	RechargesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "membership_recharges_total",
			Help: "Total number of recharge attempts by outcome",
		},
		[]string{"outcome"},
	)

	// FeesCollected — суммарно удержанные комиссии.
	FeesCollected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "membership_fees_collected_total",
			Help: "Total fee amount forwarded to the fee receiver",
		},
	)

	// RefundsPaid — суммарно возвращённые излишки.
	RefundsPaid = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "membership_refunds_paid_total",
			Help: "Total amount refunded to callers",
		},
	)
)
