package fabric

import (
	"github.com/eapache/queue"
	"go.uber.org/zap"

	"github.com/sarchlab/nicmsg/ctrlmsg"
	"github.com/sarchlab/nicmsg/sim"
)

// Builder can build fabrics.
type Builder struct {
	engine       sim.EventScheduler
	numNodes     int
	coresPerNode int
	costConfig   CostConfig
	logger       *zap.Logger
	metricHook   ctrlmsg.MetricHook
	minBuffers   int
	maxBuffers   int
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		numNodes:     2,
		coresPerNode: 1,
		costConfig:   DefaultCostConfig(),
		logger:       zap.NewNop(),
		minBuffers:   ctrlmsg.DefaultMinPostedShortBuffers,
		maxBuffers:   ctrlmsg.DefaultMaxPostedShortBuffers,
	}
}

// WithEngine sets the engine that the fabric schedules events on.
func (b Builder) WithEngine(engine sim.EventScheduler) Builder {
	b.engine = engine
	return b
}

// WithNumNodes sets the number of nodes.
func (b Builder) WithNumNodes(n int) Builder {
	b.numNodes = n
	return b
}

// WithCoresPerNode sets the number of cores, and thus endpoints, per node.
func (b Builder) WithCoresPerNode(n int) Builder {
	b.coresPerNode = n
	return b
}

// WithCostConfig sets the coefficients of the cost model.
func (b Builder) WithCostConfig(cfg CostConfig) Builder {
	b.costConfig = cfg
	return b
}

// WithLogger sets the logger of the endpoints and their message layers.
func (b Builder) WithLogger(logger *zap.Logger) Builder {
	b.logger = logger
	return b
}

// WithMetricHook sets the hook that all the message layers report to.
func (b Builder) WithMetricHook(hook ctrlmsg.MetricHook) Builder {
	b.metricHook = hook
	return b
}

// WithMinPostedShortBuffers sets the minimum size of the short buffer pools.
func (b Builder) WithMinPostedShortBuffers(n int) Builder {
	b.minBuffers = n
	return b
}

// WithMaxPostedShortBuffers sets the maximum size of the short buffer pools.
func (b Builder) WithMaxPostedShortBuffers(n int) Builder {
	b.maxBuffers = n
	return b
}

// Build creates the fabric with all its endpoints.
func (b Builder) Build(name string) *Fabric {
	if b.engine == nil {
		panic("engine is not set")
	}

	if b.numNodes <= 0 || b.coresPerNode <= 0 {
		panic("the fabric must have at least one endpoint")
	}

	f := &Fabric{
		name:         name,
		sched:        sim.NewCallbackScheduler(b.engine),
		cost:         NewLinearCostModel(b.costConfig),
		numNodes:     b.numNodes,
		coresPerNode: b.coresPerNode,
	}

	numEndpoints := b.numNodes * b.coresPerNode

	for i := 0; i < numEndpoints; i++ {
		f.endpoints = append(f.endpoints, b.buildEndpoint(f, ctrlmsg.NID(i)))
	}

	for i, ep := range f.endpoints {
		groups := NewGroupMap(ctrlmsg.NID(i), numEndpoints)
		q := b.buildProcessQueues(f, ep, groups)

		ep.AttachHost(q)
		f.groupMaps = append(f.groupMaps, groups)
		f.queues = append(f.queues, q)
	}

	return f
}

func (b Builder) buildEndpoint(f *Fabric, nid ctrlmsg.NID) *Endpoint {
	node := f.nodeOf(nid)
	core := f.coreOf(nid)
	name := sim.BuildNameWithIndex(
		sim.BuildNameWithIndex(f.name, "Node", node), "Core", core)

	return &Endpoint{
		name:    sim.BuildName(name, "NIC"),
		fabric:  f,
		nid:     nid,
		node:    node,
		core:    core,
		logger:  b.logger.With(zap.String("nic", name)),
		posted:  make(map[ctrlmsg.Key][]*postedRecv),
		pending: make(map[ctrlmsg.Key]*queue.Queue),
		regions: make(map[regionKey][]ctrlmsg.IoVec),
	}
}

func (b Builder) buildProcessQueues(
	f *Fabric,
	ep *Endpoint,
	groups *GroupMap,
) *ctrlmsg.ProcessQueues {
	name := sim.BuildNameWithIndex(
		sim.BuildNameWithIndex(f.name, "Node", ep.node), "Core", ep.core)

	builder := ctrlmsg.MakeBuilder().
		WithNIC(ep).
		WithCostModel(f.cost).
		WithScheduler(f.sched).
		WithLooper(ep).
		WithGroupMap(groups).
		WithLogger(b.logger).
		WithMinPostedShortBuffers(b.minBuffers).
		WithMaxPostedShortBuffers(b.maxBuffers)

	if b.metricHook != nil {
		builder = builder.WithMetricHook(b.metricHook)
	}

	return builder.Build(sim.BuildName(name, "CtrlMsg"))
}
