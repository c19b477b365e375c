// Package prometheus exports the query statistics of a StatsDriver
// and the pool state of its underlying database as Prometheus
// metrics.
package prometheus

import (
	dsql "github.com/syssam/sqldata/dialect/sql"

	"github.com/prometheus/client_golang/prometheus"
)

// defaultNamespace prefixes all metric names unless WithNamespace
// overrides it.
const defaultNamespace = "sqldata"

// Collector implements prometheus.Collector over a StatsDriver. Query
// statistics are exported as counters, the connection pool state as
// gauges, all labeled with the driver dialect.
type Collector struct {
	drv *dsql.StatsDriver

	queriesTotal *prometheus.Desc
	execsTotal   *prometheus.Desc
	querySeconds *prometheus.Desc
	slowTotal    *prometheus.Desc
	errorsTotal  *prometheus.Desc

	maxOpen           *prometheus.Desc
	open              *prometheus.Desc
	inUse             *prometheus.Desc
	idle              *prometheus.Desc
	waitsTotal        *prometheus.Desc
	waitSeconds       *prometheus.Desc
	maxIdleClosed     *prometheus.Desc
	maxIdleTimeClosed *prometheus.Desc
	maxLifetimeClosed *prometheus.Desc
}

// Option configures the Collector.
type Option func(*config)

type config struct {
	namespace string
}

// WithNamespace sets the prefix of all metric names.
func WithNamespace(ns string) Option {
	return func(c *config) { c.namespace = ns }
}

// NewCollector builds a Collector for the given driver. Register it
// with a prometheus.Registerer to start scraping.
func NewCollector(drv *dsql.StatsDriver, opts ...Option) *Collector {
	cfg := config{namespace: defaultNamespace}
	for _, opt := range opts {
		opt(&cfg)
	}
	labels := prometheus.Labels{"dialect": drv.Dialect()}
	desc := func(sub, name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(cfg.namespace, sub, name), help, nil, labels)
	}
	return &Collector{
		drv:          drv,
		queriesTotal: desc("", "queries_total", "Total number of queries executed."),
		execsTotal:   desc("", "execs_total", "Total number of statements executed."),
		querySeconds: desc("", "query_seconds_total", "Total time spent executing queries and statements."),
		slowTotal:    desc("", "slow_queries_total", "Total number of queries exceeding the slow threshold."),
		errorsTotal:  desc("", "query_errors_total", "Total number of failed queries and statements."),

		maxOpen:           desc("pool", "max_open_connections", "Maximum number of open connections."),
		open:              desc("pool", "open_connections", "Number of established connections."),
		inUse:             desc("pool", "in_use_connections", "Number of connections currently in use."),
		idle:              desc("pool", "idle_connections", "Number of idle connections."),
		waitsTotal:        desc("pool", "waits_total", "Total number of connections waited for."),
		waitSeconds:       desc("pool", "wait_seconds_total", "Total time blocked waiting for a connection."),
		maxIdleClosed:     desc("pool", "max_idle_closed_total", "Total number of connections closed by SetMaxIdleConns."),
		maxIdleTimeClosed: desc("pool", "max_idle_time_closed_total", "Total number of connections closed by SetConnMaxIdleTime."),
		maxLifetimeClosed: desc("pool", "max_lifetime_closed_total", "Total number of connections closed by SetConnMaxLifetime."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.queriesTotal
	ch <- c.execsTotal
	ch <- c.querySeconds
	ch <- c.slowTotal
	ch <- c.errorsTotal
	ch <- c.maxOpen
	ch <- c.open
	ch <- c.inUse
	ch <- c.idle
	ch <- c.waitsTotal
	ch <- c.waitSeconds
	ch <- c.maxIdleClosed
	ch <- c.maxIdleTimeClosed
	ch <- c.maxLifetimeClosed
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.drv.QueryStats().Stats()
	ch <- prometheus.MustNewConstMetric(c.queriesTotal, prometheus.CounterValue, float64(s.TotalQueries))
	ch <- prometheus.MustNewConstMetric(c.execsTotal, prometheus.CounterValue, float64(s.TotalExecs))
	ch <- prometheus.MustNewConstMetric(c.querySeconds, prometheus.CounterValue, s.TotalDuration.Seconds())
	ch <- prometheus.MustNewConstMetric(c.slowTotal, prometheus.CounterValue, float64(s.SlowQueries))
	ch <- prometheus.MustNewConstMetric(c.errorsTotal, prometheus.CounterValue, float64(s.Errors))

	db := c.drv.DB().Stats()
	ch <- prometheus.MustNewConstMetric(c.maxOpen, prometheus.GaugeValue, float64(db.MaxOpenConnections))
	ch <- prometheus.MustNewConstMetric(c.open, prometheus.GaugeValue, float64(db.OpenConnections))
	ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(db.InUse))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(db.Idle))
	ch <- prometheus.MustNewConstMetric(c.waitsTotal, prometheus.CounterValue, float64(db.WaitCount))
	ch <- prometheus.MustNewConstMetric(c.waitSeconds, prometheus.CounterValue, db.WaitDuration.Seconds())
	ch <- prometheus.MustNewConstMetric(c.maxIdleClosed, prometheus.CounterValue, float64(db.MaxIdleClosed))
	ch <- prometheus.MustNewConstMetric(c.maxIdleTimeClosed, prometheus.CounterValue, float64(db.MaxIdleTimeClosed))
	ch <- prometheus.MustNewConstMetric(c.maxLifetimeClosed, prometheus.CounterValue, float64(db.MaxLifetimeClosed))
}

var _ prometheus.Collector = (*Collector)(nil)
