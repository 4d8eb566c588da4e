package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"furnace_forecast/internal/models"
)

// Metrics exposes the poller's view of the home to Prometheus.
type Metrics struct {
	indoorTemp      prometheus.Gauge
	outdoorTemp     prometheus.Gauge
	furnaceRunning  prometheus.Gauge
	minutesToTarget prometheus.Gauge
	heatLossRate    prometheus.Gauge
	pollErrorsTotal prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		indoorTemp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "furnace",
			Name:      "indoor_temp_f",
			Help:      "Current indoor temperature in °F",
		}),
		outdoorTemp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "furnace",
			Name:      "outdoor_temp_f",
			Help:      "Current outdoor temperature in °F",
		}),
		furnaceRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "furnace",
			Name:      "running",
			Help:      "1 when the furnace is reported running",
		}),
		minutesToTarget: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "furnace",
			Name:      "minutes_to_target",
			Help:      "Predicted minutes until setpoint; -1 when unreachable",
		}),
		heatLossRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "furnace",
			Name:      "heat_loss_f_per_min",
			Help:      "Estimated heat-loss rate in °F/min",
		}),
		pollErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "furnace",
			Name:      "poll_errors_total",
			Help:      "Telemetry polls that fell back to mock data",
		}),
	}
	reg.MustRegister(
		m.indoorTemp,
		m.outdoorTemp,
		m.furnaceRunning,
		m.minutesToTarget,
		m.heatLossRate,
		m.pollErrorsTotal,
	)
	return m
}

// Observe publishes one poll's snapshot and prediction.
func (m *Metrics) Observe(snap models.ThermostatSnapshot, pred models.PredictionResult) {
	m.indoorTemp.Set(snap.IndoorTemp)
	m.outdoorTemp.Set(snap.OutdoorTemp)
	if snap.FurnaceRunning {
		m.furnaceRunning.Set(1)
	} else {
		m.furnaceRunning.Set(0)
	}
	if pred.MinutesToTarget != nil {
		m.minutesToTarget.Set(*pred.MinutesToTarget)
	} else {
		m.minutesToTarget.Set(-1)
	}
	m.heatLossRate.Set(pred.HeatLossRate)
}

// PollError counts a failed vendor poll.
func (m *Metrics) PollError() {
	m.pollErrorsTotal.Inc()
}
