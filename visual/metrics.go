package visual

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	visualCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "visual_count",
		Help: "The number of visuals in the scene.",
	})

	visualFlushes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "visual_flushes",
		Help: "The number of deferred poses applied by render passes.",
	})

	visualImmediateUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "visual_immediate_updates",
		Help: "The number of poses applied immediately.",
	})

	renderPassCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "visual_render_passes",
		Help: "The number of render passes.",
	})
)

func instrumentIncreaseVisualGauge() {
	visualCount.Inc()
}

func instrumentDecreaseVisualGauge() {
	visualCount.Dec()
}

func instrumentFlushes(n int) {
	renderPassCount.Inc()
	visualFlushes.Add(float64(n))
}

func instrumentImmediateUpdate() {
	visualImmediateUpdates.Inc()
}
