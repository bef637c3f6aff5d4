package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaRecordsPolled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_records_polled_total",
			Help: "Number of records returned by poll",
		},
		[]string{"topic"},
	)
	KafkaRecordsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_records_processed_total",
			Help: "Number of records handled successfully",
		},
		[]string{"topic"},
	)
	KafkaRecordsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_records_failed_total",
			Help: "Number of records whose handling failed",
		},
		[]string{"topic"},
	)
	KafkaFaults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_consumer_faults_total",
			Help: "Consumer loop faults by kind",
		},
		[]string{"kind"}, // authorization|transport|sink|unclassified
	)
	KafkaCommits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_offset_commits_total",
			Help: "Offset commits by status",
		},
		[]string{"status"}, // ok|error
	)
)

var (
	HealthVotes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "health_unhealthy_votes",
			Help: "Accumulated unhealthy votes",
		},
	)
)

var (
	WarehouseRowsWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "warehouse_rows_written_total",
			Help: "Rows inserted into the history table",
		},
	)
	WarehouseRowErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "warehouse_row_errors_total",
			Help: "Rows rejected by the history table",
		},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired|invalidated|stale_set
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в глобальном реестре; повторные вызовы ничего не делают.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaRecordsPolled, KafkaRecordsProcessed, KafkaRecordsFailed, KafkaFaults, KafkaCommits,
			HealthVotes,
			WarehouseRowsWritten, WarehouseRowErrors,
			CacheOps, CacheSize,
		)
	})
}
