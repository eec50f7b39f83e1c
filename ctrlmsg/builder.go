package ctrlmsg

import (
	"github.com/eapache/queue"
	"go.uber.org/zap"
)

// Builder can build ProcessQueues.
type Builder struct {
	nic        NIC
	cost       CostModel
	sched      Scheduler
	looper     Looper
	groups     GroupMap
	logger     *zap.Logger
	metricHook MetricHook
	minBuffers int
	maxBuffers int
}

// MakeBuilder returns a new Builder
func MakeBuilder() Builder {
	return Builder{
		logger:     zap.NewNop(),
		metricHook: nopMetricHook{},
		minBuffers: DefaultMinPostedShortBuffers,
		maxBuffers: DefaultMaxPostedShortBuffers,
	}
}

// WithNIC sets the NIC that the endpoint sends and receives through.
func (b Builder) WithNIC(nic NIC) Builder {
	b.nic = nic
	return b
}

// WithCostModel sets the model that tells how long operations take.
func (b Builder) WithCostModel(cost CostModel) Builder {
	b.cost = cost
	return b
}

// WithScheduler sets the scheduler that callbacks are deferred on.
func (b Builder) WithScheduler(sched Scheduler) Builder {
	b.sched = sched
	return b
}

// WithLooper sets the looper that reaches the other cores of the node.
func (b Builder) WithLooper(looper Looper) Builder {
	b.looper = looper
	return b
}

// WithGroupMap sets the map from group ranks to endpoints.
func (b Builder) WithGroupMap(groups GroupMap) Builder {
	b.groups = groups
	return b
}

// WithLogger sets the logger. By default, nothing is logged.
func (b Builder) WithLogger(logger *zap.Logger) Builder {
	b.logger = logger
	return b
}

// WithMetricHook sets the hook that receives the counters.
func (b Builder) WithMetricHook(hook MetricHook) Builder {
	b.metricHook = hook
	return b
}

// WithMinPostedShortBuffers sets the number of short buffers that are kept
// posted to the NIC.
func (b Builder) WithMinPostedShortBuffers(n int) Builder {
	b.minBuffers = n
	return b
}

// WithMaxPostedShortBuffers sets the maximum number of short buffers that
// can be posted to the NIC at the same time.
func (b Builder) WithMaxPostedShortBuffers(n int) Builder {
	b.maxBuffers = n
	return b
}

// Build creates the ProcessQueues and posts the initial short buffers.
func (b Builder) Build(name string) *ProcessQueues {
	b.mustBeComplete()

	p := &ProcessQueues{
		name:           name,
		nic:            b.nic,
		cost:           b.cost,
		sched:          b.sched,
		looper:         b.looper,
		groups:         b.groups,
		logger:         b.logger.With(zap.String("node", name)),
		metricHook:     b.metricHook,
		shortMsgLength: b.cost.ShortMsgLength(),
		longAckQ:       queue.New(),
		longGetFiniQ:   queue.New(),
		loopResp:       queue.New(),
		pool:           newShortBufferPool(b.minBuffers, b.maxBuffers),
		getKeys:        keyGenerator{marker: LongGetKey},
		mainStack:      callStack{name: "main"},
		intStack:       callStack{name: "interrupt"},
	}

	p.topUpShortBuffers()

	return p
}

func (b Builder) mustBeComplete() {
	switch {
	case b.nic == nil:
		panic("NIC is not set")
	case b.cost == nil:
		panic("cost model is not set")
	case b.sched == nil:
		panic("scheduler is not set")
	case b.looper == nil:
		panic("looper is not set")
	case b.groups == nil:
		panic("group map is not set")
	case b.logger == nil:
		panic("logger is not set")
	case b.metricHook == nil:
		panic("metric hook is not set")
	case b.minBuffers < 0 || b.maxBuffers < b.minBuffers:
		panic("short buffer bounds are invalid")
	}
}

type nopMetricHook struct{}

func (nopMetricHook) SendCompleted(map[string]string)     {}
func (nopMetricHook) RecvCompleted(map[string]string)     {}
func (nopMetricHook) UnexpectedMessage(map[string]string) {}
func (nopMetricHook) InterruptPass(map[string]string)     {}
func (nopMetricHook) InterruptMissed(map[string]string)   {}
