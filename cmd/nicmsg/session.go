package main

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"

	"github.com/sarchlab/nicmsg/ctrlmsg"
	"github.com/sarchlab/nicmsg/datarecording"
	"github.com/sarchlab/nicmsg/fabric"
	"github.com/sarchlab/nicmsg/metrics"
	"github.com/sarchlab/nicmsg/monitoring"
	"github.com/sarchlab/nicmsg/sim"
	"github.com/sarchlab/nicmsg/tracing"
	"github.com/sarchlab/nicmsg/workload"
)

// A session is one simulation of a scenario with everything that observes
// it.
type session struct {
	opts     options
	scenario workload.Scenario
	logger   *zap.Logger
	out      io.Writer

	engine   *sim.SerialEngine
	fabric   *fabric.Fabric
	registry *prometheus.Registry
	reader   *sdkmetric.ManualReader
	provider *sdkmetric.MeterProvider
	monitor  *monitoring.Monitor
	recorder datarecording.DataRecorder

	sendTime  *tracing.AverageTimeTracer
	recvTime  *tracing.AverageTimeTracer
	nicTime   *tracing.TotalTimeTracer
	stepCount *tracing.StepCountTracer
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)

	return cfg.Build()
}

func newSession(
	o options,
	s workload.Scenario,
	logger *zap.Logger,
	out io.Writer,
) (*session, error) {
	ss := &session{
		opts:     o,
		scenario: s,
		logger:   logger.With(zap.String("scenario", s.Name)),
		out:      out,
		engine:   sim.NewSerialEngine(),
		registry: prometheus.NewRegistry(),
		reader:   sdkmetric.NewManualReader(),
	}

	if o.logEvents {
		ss.engine.AcceptHook(sim.NewEventLogger(ss.logger))
	}

	hook, err := ss.buildMetricHook()
	if err != nil {
		return nil, err
	}

	ss.fabric = fabric.MakeBuilder().
		WithEngine(ss.engine).
		WithNumNodes(s.NumNodes).
		WithCoresPerNode(s.CoresPerNode).
		WithCostConfig(o.costConfig()).
		WithMinPostedShortBuffers(o.minShortBufs).
		WithMaxPostedShortBuffers(o.maxShortBufs).
		WithLogger(ss.logger).
		WithMetricHook(hook).
		Build("Cluster")
	ss.fabric.Finish(ss.engine)

	ss.attachTracers()

	if o.monitor {
		ss.startMonitor()
	}

	return ss, nil
}

func (s *session) buildMetricHook() (ctrlmsg.MetricHook, error) {
	prom, err := metrics.NewPrometheus(metrics.PrometheusOptions{
		Registerer: s.registry,
	})
	if err != nil {
		return nil, err
	}

	s.provider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(s.reader))

	otel, err := metrics.NewOTel(metrics.OTelOptions{
		MeterProvider: s.provider,
	})
	if err != nil {
		return nil, err
	}

	return metrics.Multi{prom, otel}, nil
}

func (s *session) domains() []tracing.NamedHookable {
	domains := make([]tracing.NamedHookable, 0)
	for i := 0; i < s.fabric.NumEndpoints(); i++ {
		nid := ctrlmsg.NID(i)
		domains = append(domains,
			s.fabric.ProcessQueues(nid), s.fabric.Endpoint(nid))
	}

	return domains
}

func (s *session) attachTracers() {
	tracers := make([]tracing.Tracer, 0)

	if s.opts.traceSummary {
		s.sendTime = tracing.NewAverageTimeTracer(s.engine,
			tracing.KindFilter("send"))
		s.recvTime = tracing.NewAverageTimeTracer(s.engine,
			tracing.KindFilter("recv"))
		s.nicTime = tracing.NewTotalTimeTracer(s.engine,
			tracing.KindFilter("nic"))
		s.stepCount = tracing.NewStepCountTracer(nil)

		tracers = append(tracers, s.sendTime, s.recvTime, s.nicTime, s.stepCount)
	}

	if s.opts.traceDB != "" {
		s.recorder = datarecording.New(s.opts.traceDB + "_" + s.scenario.Name)
		tracers = append(tracers, tracing.NewDBTracer(s.engine, s.recorder))
	}

	for _, d := range s.domains() {
		for _, t := range tracers {
			tracing.CollectTrace(d, t)
		}
	}
}

func (s *session) startMonitor() {
	simulation := sim.NewSimulation(s.engine)
	s.fabric.RegisterComponents(simulation)

	s.monitor = monitoring.NewMonitor().
		WithPortNumber(s.opts.monitorPort).
		WithGatherer(s.registry)
	s.monitor.RegisterSimulation(simulation)
	s.monitor.StartServer()

	if s.opts.openBrowser {
		if err := s.monitor.OpenInBrowser(); err != nil {
			s.logger.Warn("cannot open browser", zap.Error(err))
		}
	}
}

// run runs the scenario to the end and checks the results.
func (s *session) run() ([]workload.Result, error) {
	var onFinish []func(workload.Result)

	if s.monitor != nil {
		bar := s.monitor.CreateProgressBar(
			fmt.Sprintf("%s ranks", s.scenario.Name),
			uint64(len(s.scenario.Programs)))
		bar.IncrementInProgress(uint64(len(s.scenario.Programs)))

		onFinish = append(onFinish, func(workload.Result) {
			bar.MoveInProgressToFinished(1)
		})
	}

	results, err := workload.Run(s.engine, s.fabric, s.scenario.Programs,
		s.logger, onFinish...)
	if err != nil {
		return nil, err
	}

	s.engine.Finished()

	if err := workload.CheckResults(results); err != nil {
		return results, fmt.Errorf("scenario %s: %w", s.scenario.Name, err)
	}

	if s.scenario.Check != nil {
		if err := s.scenario.Check(results); err != nil {
			return results, fmt.Errorf("scenario %s: %w", s.scenario.Name, err)
		}
	}

	return results, nil
}

func (s *session) close() {
	if s.monitor != nil {
		s.monitor.StopServer()
	}

	if s.recorder != nil {
		if err := s.recorder.Close(); err != nil {
			s.logger.Warn("cannot close trace database", zap.Error(err))
		}
	}
}
