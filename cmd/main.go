package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"reflect"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/events"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/go-tooling/pkg/metrics"
	"github.com/aukilabs/posegraph/featureflag"
	posehttp "github.com/aukilabs/posegraph/http"
	"github.com/aukilabs/posegraph/models"
	"github.com/aukilabs/posegraph/modules"
	"github.com/aukilabs/posegraph/physics"
	"github.com/aukilabs/posegraph/smoketest"
	"github.com/aukilabs/posegraph/visual"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
)

var (
	// The posegraph version number. Set at build.
	version = "v0.1.0"

	infoGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name:        "posegraph_info",
		Help:        "Posegraph information.",
		ConstLabels: prometheus.Labels{"version": version},
	})
)

// This will effectively disable obfuscation of the config struct. Without it, the keys would get obfuscated causing the cli package to generate garbled command-line options.
// https://github.com/burrowers/garble/issues/403
var _ = reflect.TypeOf(config{})

type config struct {
	AdminAddr           string        `cli:""        env:"POSEGRAPH_ADMIN_ADDR"            help:"Admin listening address."`
	LogLevel            string        `cli:""        env:"POSEGRAPH_LOG_LEVEL"             help:"Log level (debug|info|warning|error)."`
	LogIndent           bool          `cli:""        env:"POSEGRAPH_LOG_INDENT"            help:"Indent logs."`
	RunState            string        `cli:""        env:"POSEGRAPH_RUN_STATE"             help:"Initial run state of the world (stopped|paused|running)."`
	FrameDuration       time.Duration `cli:",hidden" env:"POSEGRAPH_FRAME_DURATION"        help:"The duration of a simulation frame."`
	RenderFrameDuration time.Duration `cli:",hidden" env:"POSEGRAPH_RENDER_FRAME_DURATION" help:"The duration between each render pass."`
	Events              eventsConfig  `cli:",hidden" env:"-"                               help:"Event pusher configuration."`
	FeatureFlags        []string      `cli:",hidden" env:"POSEGRAPH_FEATURE_FLAGS"         help:"Comma separated feature flags."`
	Version             bool          `cli:""        env:"-"                               help:"Show version."`
	Help                bool          `cli:""        env:"-"                               help:"Show help."`
}

type eventsConfig struct {
	Endpoint      string        `cli:",hidden" env:"POSEGRAPH_EVENTS_ENDPOINT"       help:"Endpoint to where events are pushed. Events are not pushed when empty."`
	FlushInterval time.Duration `cli:",hidden" env:"POSEGRAPH_EVENTS_FLUSH_INTERVAL" help:"The duration between each event flush."`
	BatchSize     int           `cli:",hidden" env:"POSEGRAPH_EVENTS_BATCH_SIZE"     help:"The maximum number of events sent at once."`
	QueueSize     int           `cli:",hidden" env:"POSEGRAPH_EVENTS_QUEUE_SIZE"     help:"The size of the queue where events are stored."`
}

func main() {
	conf := config{
		AdminAddr:           ":18190",
		LogLevel:            logs.InfoLevel.String(),
		RunState:            models.RunStateRunning.String(),
		FrameDuration:       time.Millisecond * 15,
		RenderFrameDuration: time.Millisecond * 16,
		Events: eventsConfig{
			FlushInterval: events.DefaultFlushInterval,
			BatchSize:     events.DefaultBatchSize,
			QueueSize:     events.DefaultQueueSize,
		},
	}

	// set the information gauge to 1, useful for SUM query
	infoGauge.Set(1)

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Starts a posegraph world and its admin server.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	errors.Encoder = json.Marshal

	if conf.Events.Endpoint != "" {
		eventsPusher := events.Pusher{
			Endpoint:      conf.Events.Endpoint,
			FlushInterval: conf.Events.FlushInterval,
			BatchSize:     conf.Events.BatchSize,
			QueueSize:     conf.Events.QueueSize,
			Transport:     metrics.HTTPTransport(http.DefaultTransport),
		}
		go eventsPusher.Start()
		defer eventsPusher.Close()

		eventsLogger := events.Logger{
			Pusher:           &eventsPusher,
			SDKType:          "posegraph",
			SDKVersionFamily: version,
		}
		logs.SetLogger(eventsLogger.Log)
	}

	flags := featureflag.New(conf.FeatureFlags)
	runState, _ := models.ParseRunState(conf.RunState)

	var physicsEngine physics.Engine
	var scene visual.Scene

	world := models.NewWorld(1, models.WorldConfig{
		FrameDuration: conf.FrameDuration,
		Physics:       &physicsEngine,
		Visuals:       &scene,
		RenderEnabled: !flags.IsSet(featureflag.FlagDisableRenderEngine),
		RunState:      runState,
	})
	defer world.Close()

	demo, err := newDemoScene(world)
	if err != nil {
		logs.Fatal(errors.New("creating the demo scene failed").Wrap(err))
	}

	stopModules := func() {}
	flags.IfNotSet(featureflag.FlagDisableModules, func() {
		if stopModules, err = modules.Start(world, demo.modules()...); err != nil {
			logs.Fatal(errors.New("starting modules failed").Wrap(err))
		}
	})
	defer stopModules()

	go world.StartDispatchFrames()

	flags.IfNotSet(featureflag.FlagDisableRenderEngine, func() {
		go scene.Start(ctx, conf.RenderFrameDuration)
	})

	readinessCheck := func() bool {
		return world.EntityCount() != 0
	}

	var admin http.ServeMux
	admin.Handle("/metrics", promhttp.Handler())
	admin.HandleFunc("/health", posehttp.HandleHealthCheck)
	admin.HandleFunc("/ready", posehttp.HandleReadyCheck(readinessCheck))
	admin.Handle("/version", posehttp.HandleWithCORS(posehttp.HandleVersion(version)))
	admin.Handle("/entities", posehttp.HandleWithCORS(posehttp.HandleEntities(world)))
	admin.HandleFunc("/run-state", posehttp.HandleRunState(world))
	admin.HandleFunc("/smoke-test", smoketest.HandleSmokeTest())
	admin.HandleFunc("/debug/pprof/", pprof.Index)
	admin.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	admin.HandleFunc("/debug/pprof/profile", pprof.Profile)
	admin.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	admin.HandleFunc("/debug/pprof/trace", pprof.Trace)
	admin.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))
	admin.Handle("/debug/pprof/heap", pprof.Handler("heap"))
	admin.Handle("/debug/pprof/threadcreate", pprof.Handler("threadcreate"))
	admin.Handle("/debug/pprof/block", pprof.Handler("block"))

	logs.WithTag("version", version).
		WithTag("log_level", conf.LogLevel).
		WithTag("run_state", runState.String()).
		WithTag("entities", world.EntityCount()).
		WithTag("feature_flags", conf.FeatureFlags).
		Info("starting posegraph")

	posehttp.ListenAndServe(ctx,
		&http.Server{Addr: conf.AdminAddr, Handler: metrics.HTTPHandler(&admin,
			posehttp.MetricsPathFormatter)},
	)
}

func validateConfig(conf config) error {
	if conf.AdminAddr == "" {
		return errors.New("admin address is empty")
	}

	if _, err := models.ParseRunState(conf.RunState); err != nil {
		return errors.New("invalid run state").Wrap(err)
	}

	if conf.FrameDuration <= 0 {
		return errors.New("frame duration must be positive").
			WithTag("frame_duration", conf.FrameDuration)
	}

	if conf.RenderFrameDuration <= 0 {
		return errors.New("render frame duration must be positive").
			WithTag("render_frame_duration", conf.RenderFrameDuration)
	}

	if err := featureflag.New(conf.FeatureFlags).Validate(); err != nil {
		return errors.New("invalid feature flags").Wrap(err)
	}

	return nil
}
