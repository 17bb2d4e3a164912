package models

import (
	"strconv"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	kindLabel      = "kind"
	applyModeLabel = "apply_mode"
	errTypeLabel   = "error_type"
	staticLabel    = "static"
)

var (
	entityCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "entity_count",
		Help: "The number of entities.",
	}, []string{kindLabel})

	entityCountTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entity_count_total",
		Help: "The total number of entities.",
	}, []string{kindLabel})

	entityPoseChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entity_pose_changes",
		Help: "The number of relative pose changes by visual apply mode.",
	}, []string{applyModeLabel})

	entityPoseErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entity_pose_errors",
		Help: "The errors that occurred while setting entity poses.",
	}, []string{errTypeLabel})

	entityStaticChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entity_static_changes",
		Help: "The number of static flag assignments.",
	}, []string{staticLabel})
)

func instrumentIncreaseEntityGauge(k Kind) {
	entityCount.
		With(prometheus.Labels{kindLabel: k.String()}).
		Inc()
}

func instrumentDecreaseEntityGauge(k Kind) {
	entityCount.
		With(prometheus.Labels{kindLabel: k.String()}).
		Dec()
}

func instrumentCountEntity(k Kind) {
	entityCountTotal.
		With(prometheus.Labels{kindLabel: k.String()}).
		Inc()
}

func instrumentPoseChange(mode string) {
	entityPoseChanges.
		With(prometheus.Labels{applyModeLabel: mode}).
		Inc()
}

func instrumentPoseError(err error) {
	entityPoseErrors.
		With(prometheus.Labels{errTypeLabel: errors.Type(err)}).
		Inc()
}

func instrumentStaticChange(v bool) {
	entityStaticChanges.
		With(prometheus.Labels{staticLabel: strconv.FormatBool(v)}).
		Inc()
}
