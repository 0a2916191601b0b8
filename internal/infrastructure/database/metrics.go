package database

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterPoolMetrics exposes pgxpool counters as gauges sampled at scrape
// time. A nil pool reports zero.
func RegisterPoolMetrics(reg prometheus.Registerer, db *PostgresDB) error {
	sample := func(pick func(*PoolStats) float64) func() float64 {
		return func() float64 {
			stats, err := db.Stats()
			if err != nil {
				return 0
			}
			return pick(stats)
		}
	}

	gauges := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "db_pool_total_connections",
			Help: "Connections currently held by the pool",
		}, sample(func(s *PoolStats) float64 { return float64(s.TotalConns) })),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "db_pool_acquired_connections",
			Help: "Connections currently checked out",
		}, sample(func(s *PoolStats) float64 { return float64(s.AcquiredConns) })),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "db_pool_idle_connections",
			Help: "Idle connections in the pool",
		}, sample(func(s *PoolStats) float64 { return float64(s.IdleConns) })),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "db_pool_max_connections",
			Help: "Configured pool size",
		}, sample(func(s *PoolStats) float64 { return float64(s.MaxConns) })),
	}

	for _, g := range gauges {
		if err := reg.Register(g); err != nil {
			return err
		}
	}
	return nil
}
