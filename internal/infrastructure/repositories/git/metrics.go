package git

import "github.com/prometheus/client_golang/prometheus"

var spawnedProcessesTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "gitshell_spawned_processes_total",
		Help: "Total number of external tool processes spawned",
	},
)

var inFlightProcessGauge = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "gitshell_processes_running",
		Help: "Number of external tool processes currently executing",
	},
)

var rejectedOperationsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "gitshell_rejected_operations_total",
		Help: "Operations rejected because another one was already in flight",
	},
)

func init() {
	prometheus.MustRegister(spawnedProcessesTotal, inFlightProcessGauge, rejectedOperationsTotal)
}
