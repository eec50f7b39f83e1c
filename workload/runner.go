package workload

import (
	"bytes"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/sarchlab/nicmsg/ctrlmsg"
	"github.com/sarchlab/nicmsg/sim"
)

// Endpoint is the message layer that a rank runs on.
type Endpoint interface {
	Send(req *ctrlmsg.CommReq, ret func())
	Recv(req *ctrlmsg.CommReq, ret func())
	Wait(w *ctrlmsg.WaitReq, ret func())
}

// Result is what a rank did.
type Result struct {
	Rank       ctrlmsg.RankID
	Finished   bool
	FinishTime sim.VTimeInSec
	OpsDone    int
	Statuses   map[int]ctrlmsg.Status
	Protocols  map[int]string
	Errors     []error
}

// Runner runs the program of one rank. Each operation starts when the
// previous one returns.
type Runner struct {
	rank    ctrlmsg.RankID
	ep      Endpoint
	sched   ctrlmsg.Scheduler
	program Program
	logger  *zap.Logger

	next     int
	onFinish []func(Result)
	reqs     map[int]*ctrlmsg.CommReq
	ops      map[int]Op
	result   Result
}

// NewRunner creates a runner for the rank.
func NewRunner(
	rank ctrlmsg.RankID,
	ep Endpoint,
	sched ctrlmsg.Scheduler,
	program Program,
	logger *zap.Logger,
) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Runner{
		rank:    rank,
		ep:      ep,
		sched:   sched,
		program: program,
		logger:  logger.With(zap.Int32("rank", int32(rank))),
		reqs:    make(map[int]*ctrlmsg.CommReq),
		ops:     make(map[int]Op),
		result: Result{
			Rank:      rank,
			Statuses:  make(map[int]ctrlmsg.Status),
			Protocols: make(map[int]string),
		},
	}
}

// Start schedules the first operation.
func (r *Runner) Start() {
	r.sched.SchedCallback(r.step, 0)
}

// OnFinish registers a function that is called with the result when the
// program ends.
func (r *Runner) OnFinish(fn func(Result)) {
	r.onFinish = append(r.onFinish, fn)
}

// Result returns what the rank has done so far.
func (r *Runner) Result() Result {
	return r.result
}

func (r *Runner) step() {
	if r.next == len(r.program.Ops) {
		r.finish()
		return
	}

	op := r.program.Ops[r.next]
	r.next++

	r.logger.Debug("op",
		zap.Stringer("kind", op.Kind),
		zap.Int("slot", op.Slot),
		zap.Float64("time", float64(r.sched.CurrentTime())))

	switch op.Kind {
	case OpSend:
		req := ctrlmsg.NewSendReq(sendVec(op), op.Count, op.ElementSize,
			op.Peer, op.Tag, op.Group, op.Blocking)
		r.track(op, req)
		r.ep.Send(req, r.returned)
	case OpRecv:
		req := ctrlmsg.NewRecvReq(recvVec(op), op.Count, op.ElementSize,
			op.Peer, op.Tag, op.Group, op.Blocking, op.Ignore)
		r.track(op, req)
		r.ep.Recv(req, r.returned)
	case OpWait:
		req, ok := r.reqs[op.Slot]
		if !ok {
			log.Panicf("rank %d waits for empty slot %d", r.rank, op.Slot)
		}

		r.ep.Wait(ctrlmsg.NewWaitReq(req), r.returned)
	case OpCompute:
		r.sched.SchedCallback(r.returned, op.Duration)
	default:
		log.Panicf("rank %d: unknown op kind %d", r.rank, op.Kind)
	}
}

func sendVec(op Op) []ctrlmsg.IoVec {
	if op.Data != nil {
		return []ctrlmsg.IoVec{ctrlmsg.MakeIoVec(op.Data)}
	}

	return []ctrlmsg.IoVec{{Len: op.Length()}}
}

func recvVec(op Op) []ctrlmsg.IoVec {
	if op.Expect != nil {
		return []ctrlmsg.IoVec{ctrlmsg.MakeIoVec(make([]byte, op.Length()))}
	}

	return []ctrlmsg.IoVec{{Len: op.Length()}}
}

func (r *Runner) track(op Op, req *ctrlmsg.CommReq) {
	if _, busy := r.reqs[op.Slot]; busy {
		r.collect(op.Slot)
	}

	r.reqs[op.Slot] = req
	r.ops[op.Slot] = op
}

func (r *Runner) returned() {
	r.result.OpsDone++
	r.step()
}

// collect checks a request that is no longer tracked.
func (r *Runner) collect(slot int) {
	req := r.reqs[slot]
	op := r.ops[slot]

	delete(r.reqs, slot)
	delete(r.ops, slot)

	if !req.IsDone() {
		r.result.Errors = append(r.result.Errors,
			fmt.Errorf("rank %d: request in slot %d never completed",
				r.rank, slot))

		return
	}

	r.result.Protocols[slot] = req.Protocol()

	if req.Direction() != ctrlmsg.DirRecv {
		return
	}

	r.result.Statuses[slot] = req.Status()

	if op.Expect != nil && !bytes.Equal(req.IoVec()[0].Data, op.Expect) {
		r.result.Errors = append(r.result.Errors,
			fmt.Errorf("rank %d: slot %d received unexpected data",
				r.rank, slot))
	}
}

func (r *Runner) finish() {
	for slot := range r.reqs {
		r.collect(slot)
	}

	r.result.Finished = true
	r.result.FinishTime = r.sched.CurrentTime()

	r.logger.Debug("finished",
		zap.Float64("time", float64(r.result.FinishTime)),
		zap.Int("errors", len(r.result.Errors)))

	for _, fn := range r.onFinish {
		fn(r.result)
	}
}
