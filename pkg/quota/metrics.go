package quota

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	quotaHitsToday = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "newsaura_gnews_hits_today",
		Help: "GNews API calls recorded for the current UTC day",
	})

	quotaBlocksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsaura_gnews_quota_blocks_total",
		Help: "Total number of upstream calls blocked by the exhausted daily quota",
	})

	quotaWarningsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsaura_gnews_quota_warnings_total",
		Help: "Total number of quota increments recorded inside the warning band",
	})
)
