package physics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	enabledLabel = "enabled"
)

var (
	bodyCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "physics_body_count",
		Help: "The number of bodies registered in the physics engine.",
	})

	enabledChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "physics_enabled_changes",
		Help: "The number of body simulation state changes.",
	}, []string{enabledLabel})
)

func instrumentIncreaseBodyGauge() {
	bodyCount.Inc()
}

func instrumentDecreaseBodyGauge() {
	bodyCount.Dec()
}

func instrumentEnabledChange(enabled bool) {
	enabledChanges.
		With(prometheus.Labels{enabledLabel: strconv.FormatBool(enabled)}).
		Inc()
}
