package ctrlmsg

import (
	"log"

	"github.com/eapache/queue"
	"go.uber.org/zap"

	"github.com/sarchlab/nicmsg/sim"
	"github.com/sarchlab/nicmsg/tracing"
)

// ProcessQueues is the control-message layer of one endpoint. It matches
// incoming messages against posted receives, selects the transport of
// outgoing messages, and drives the completion of requests.
//
// All the public operations take a return continuation. The continuation is
// scheduled on the engine when the operation returns to its caller. A caller
// must not start a new operation before the previous one has returned.
type ProcessQueues struct {
	sim.HookableBase

	name           string
	nic            NIC
	cost           CostModel
	sched          Scheduler
	looper         Looper
	groups         GroupMap
	logger         *zap.Logger
	metricHook     MetricHook
	shortMsgLength int

	posted     postedQueue
	unexpected []*message

	longAckQ     *queue.Queue
	longGetFiniQ *queue.Queue
	loopResp     *queue.Queue

	pool    *shortBufferPool
	getKeys keyGenerator

	mainStack callStack
	intStack  callStack
	intr      interruptCoalescer
}

// Name returns the name of the endpoint.
func (p *ProcessQueues) Name() string {
	return p.name
}

// Send starts sending the request. Sends to a core on the same node take the
// loopback path. Other sends are eager if the message is not longer than the
// short message length, and rendezvous otherwise.
func (p *ProcessQueues) Send(req *CommReq, ret func()) {
	if req.dir != DirSend {
		log.Panicf("%s: request %s is not a send", p.name, req.ID)
	}

	req.setSrcRank(p.groups.MyRank(req.hdr.Group))
	nid := p.groups.NID(req.hdr.Group, req.destRank)

	tracing.StartTask(req.ID, "", p, "send", "send", req.hdr)

	p.logger.Debug("send",
		zap.String("req", req.ID),
		zap.Int32("nid", int32(nid)),
		zap.Uint64("tag", uint64(req.hdr.Tag)),
		zap.Int("len", req.Length()),
		zap.Bool("blocking", req.blocking))

	if p.nic.IsLocal(nid) {
		p.loopSend(req, nid)
		p.afterIssue(req, ret, 0)

		return
	}

	length := req.Length()
	delay := p.cost.TxDelay(length) +
		p.cost.TxNicDelay() +
		p.cost.TxMemcpyDelay(MatchHeaderSize)

	if p.isLong(length) {
		delay += p.cost.RegRegionDelay(length)
	} else {
		delay += p.cost.TxMemcpyDelay(length)
	}

	p.sched.SchedCallback(func() {
		p.processSend(req, nid)
		p.afterIssue(req, ret, 0)
	}, delay)
}

// Recv posts the request to the posted-receive queue. The request is
// completed later, when a matching message is processed.
func (p *ProcessQueues) Recv(req *CommReq, ret func()) {
	if req.dir != DirRecv {
		log.Panicf("%s: request %s is not a recv", p.name, req.ID)
	}

	tracing.StartTask(req.ID, "", p, "recv", "recv", req.hdr)

	p.logger.Debug("recv",
		zap.String("req", req.ID),
		zap.Int32("rank", int32(req.hdr.Rank)),
		zap.Uint64("tag", uint64(req.hdr.Tag)),
		zap.Int("len", req.Length()),
		zap.Bool("blocking", req.blocking))

	if p.pool.canPost() && p.pool.credits.take() == creditNone {
		p.postShortBuffer()
	}

	p.posted.push(req)

	length := req.Length()
	delay := p.cost.RxPostDelay(length)

	if p.isLong(length) {
		delay += p.cost.RegRegionDelay(length)
	}

	p.afterIssue(req, ret, delay)
}

// Wait returns when the request that the wait request wraps is done. The
// return continuation is delayed by the completion delay of the request.
func (p *ProcessQueues) Wait(w *WaitReq, ret func()) {
	p.mainStack.mustBeEmpty("starting a wait")
	p.intStack.mustBeEmpty("starting a wait")

	p.mainStack.push(newWaitStep(w, ret))
	p.processQueues(&p.mainStack)
}

// afterIssue returns to the caller of a send or a receive, after waiting for
// the request if it is blocking.
func (p *ProcessQueues) afterIssue(req *CommReq, ret func(), delay sim.VTimeInSec) {
	if !req.blocking {
		p.exit(ret, delay)
		return
	}

	if delay == 0 {
		p.Wait(NewWaitReq(req), ret)
		return
	}

	p.sched.SchedCallback(func() {
		p.Wait(NewWaitReq(req), ret)
	}, delay)
}

func (p *ProcessQueues) exit(ret func(), delay sim.VTimeInSec) {
	if ret == nil {
		return
	}

	p.sched.SchedCallback(ret, delay)
}

func (p *ProcessQueues) isLong(length int) bool {
	return length > p.shortMsgLength
}

func (p *ProcessQueues) processSend(req *CommReq, nid NID) {
	if !p.isLong(req.Length()) {
		req.protocol = ProtocolEager

		vec := make([]IoVec, 0, len(req.ioVec)+1)
		vec = append(vec, MakeIoVec(req.hdr.Bytes()))
		vec = append(vec, req.ioVec...)

		tracing.AddTaskStep(req.ID, p, "pio_send")

		p.nic.PioSend(nid, ShortMsgQ, vec, func() {
			p.complete(req, p.cost.SendReqFiniDelay(req.Length()))
			p.raise()
		})

		return
	}

	req.protocol = ProtocolRendezvous
	req.hdr.Key = p.getKeys.generate()

	info := &getInfo{
		req:    req,
		hdr:    make([]byte, CtrlHeaderSize),
		nid:    nid,
		key:    req.hdr.Key,
		length: req.Length(),
	}

	p.logger.Debug("rendezvous send",
		zap.String("req", req.ID),
		zap.Uint32("key", uint32(info.key)),
		zap.Int("len", info.length))
	tracing.AddTaskStep(req.ID, p, "register")

	p.nic.DmaRecv(nid, info.key, []IoVec{MakeIoVec(info.hdr)},
		func(src NID, key Key, length int) {
			p.ackArrived(info, key)
		})
	p.nic.RegMem(nid, info.key, req.ioVec, nil)
	p.nic.PioSend(nid, ShortMsgQ, []IoVec{MakeIoVec(req.hdr.Bytes())}, nil)
}

func (p *ProcessQueues) ackArrived(info *getInfo, key Key) {
	ack := DecodeCtrlHeader(info.hdr)
	if key != info.key || ack.Key != info.key {
		log.Panicf("%s: ack for key %#x arrived on key %#x carrying %#x",
			p.name, info.key, key, ack.Key)
	}

	tracing.AddTaskStep(info.req.ID, p, "ack")

	p.longAckQ.Add(info)
	p.raise()
}

// NeedRecv is called by the NIC when a message arrives for a queue that has
// no posted buffer.
func (p *ProcessQueues) NeedRecv(nid NID, key Key, length int) {
	if key != ShortMsgQ {
		log.Panicf("%s: NIC needs a receive for unknown key %#x from %d",
			p.name, key, nid)
	}

	p.logger.Debug("need recv",
		zap.Int32("nid", int32(nid)),
		zap.Int("len", length))

	p.pool.credits.needRecv++
	p.raise()
}

func (p *ProcessQueues) postShortBuffer() {
	buf := newShortBuffer(p.shortMsgLength)
	p.pool.add(buf)

	p.nic.DmaRecv(AnyNID, ShortMsgQ, buf.ioVec(),
		func(src NID, key Key, length int) {
			p.shortBufferFilled(buf, src, key, length)
		})
}

func (p *ProcessQueues) topUpShortBuffers() {
	for p.pool.belowMin() {
		p.postShortBuffer()
	}
}

func (p *ProcessQueues) shortBufferFilled(
	buf *shortBuffer,
	src NID,
	key Key,
	length int,
) {
	if key != ShortMsgQ {
		log.Panicf("%s: short buffer filled from key %#x", p.name, key)
	}

	if !p.pool.remove(buf) {
		log.Panicf("%s: short buffer filled twice", p.name)
	}

	msg := buf.toMessage(src, length)

	p.logger.Debug("short message",
		zap.Int32("src", int32(src)),
		zap.Int32("rank", int32(msg.hdr.Rank)),
		zap.Uint64("tag", uint64(msg.hdr.Tag)),
		zap.Int("len", msg.hdr.Length()))

	p.enqueueUnexpected(msg)
	p.topUpShortBuffers()
	p.raise()
}

func (p *ProcessQueues) enqueueUnexpected(msg *message) {
	p.unexpected = append(p.unexpected, msg)
	p.report(p.metricHook.UnexpectedMessage, msg.kind.String())
}

// processQueues runs one unit of processing on the stack. It always ends by
// scheduling the resumption of the step on top of the stack.
func (p *ProcessQueues) processQueues(stack *callStack) {
	for p.pool.credits.needRecv > 0 && p.pool.canPost() {
		p.pool.credits.needRecv--
		p.pool.credits.nicRequested++
		p.postShortBuffer()
	}

	for p.longAckQ.Length() > 0 {
		info := p.longAckQ.Remove().(*getInfo)
		p.complete(info.req, p.cost.SendReqFiniDelay(info.length))
	}

	for p.loopResp.Length() > 0 {
		req := p.loopResp.Remove().(*CommReq)
		p.complete(req, 0)
	}

	switch {
	case p.longGetFiniQ.Length() > 0:
		stack.push(&step{kind: stepProcessQueues})
		p.processLongGetFini(stack)
	case len(p.unexpected) > 0:
		stack.push(&step{kind: stepProcessQueues})
		p.processShortList(stack)
	default:
		p.scheduleResume(stack, 0)
	}
}

func (p *ProcessQueues) scheduleResume(stack *callStack, delay sim.VTimeInSec) {
	p.sched.SchedCallback(func() { p.resume(stack) }, delay)
}

// resume continues the step on top of the stack.
func (p *ProcessQueues) resume(stack *callStack) {
	st := stack.top()

	switch st.kind {
	case stepWait:
		p.resumeWait(stack)
	case stepInterrupt:
		p.passDone(stack)
	case stepProcessQueues:
		stack.pop()
		p.scheduleResume(stack, 0)
	case stepShortList:
		p.shortListStep(stack)
	case stepLongGetFini:
		p.finishLongGet(stack)
	default:
		log.Panicf("%s: unknown step kind %d", p.name, st.kind)
	}
}

func (p *ProcessQueues) resumeWait(stack *callStack) {
	w := stack.pop()
	stack.mustBeEmpty("resuming a wait")

	p.checkWait(w)
}

// checkWait returns to the caller of the wait if the request is done, or
// parks the wait until an interrupt arrives.
func (p *ProcessQueues) checkWait(w *step) {
	if w.wait.IsDone() {
		p.exit(w.ret, w.wait.Delay())
		return
	}

	p.arm(w)
}

func (p *ProcessQueues) processLongGetFini(stack *callStack) {
	req := p.longGetFiniQ.Remove().(*CommReq)

	stack.push(newLongGetFiniStep(req))
	p.scheduleResume(stack, p.cost.SendAckDelay())
}

func (p *ProcessQueues) finishLongGet(stack *callStack) {
	st := stack.pop()
	req := st.req
	length := req.Length()

	p.complete(req,
		p.cost.RecvReqFiniDelay(length)+p.cost.RegRegionDelay(length))

	ack := CtrlHeader{Key: req.ackKey}
	p.nic.PioSend(req.ackNID, req.ackKey, []IoVec{MakeIoVec(ack.Bytes())},
		func() { p.raise() })

	p.scheduleResume(stack, 0)
}

func (p *ProcessQueues) processShortList(stack *callStack) {
	list := p.unexpected
	p.unexpected = nil

	stack.push(newShortListStep(list))
	p.shortListStep(stack)
}

// shortListStep moves the short list step forward by one phase. Each phase
// that costs time schedules the next one.
func (p *ProcessQueues) shortListStep(stack *callStack) {
	st := stack.top()

	switch st.phase {
	case phaseSearch:
		p.shortListSearch(stack, st)
	case phaseCopy:
		p.shortListCopy(stack, st)
	case phaseComplete:
		p.shortListComplete(stack, st)
	}
}

func (p *ProcessQueues) shortListSearch(stack *callStack, st *step) {
	if st.idx == len(st.list) {
		p.unexpected = append(st.unmatched, p.unexpected...)

		stack.pop()
		p.scheduleResume(stack, 0)

		return
	}

	msg := st.current()
	req, scanned := p.posted.search(msg.hdr)
	delay := p.cost.MatchDelay(scanned)

	if req == nil {
		st.unmatched = append(st.unmatched, msg)
		st.idx++
		p.scheduleResume(stack, delay)

		return
	}

	length := msg.hdr.Length()
	delay += p.cost.RxDelay(length)

	if msg.kind == kindShortBuffer && !p.nic.IsLocal(msg.srcNID) {
		delay += p.cost.RxNicDelay()
	}

	tracing.AddTaskStep(req.ID, p, "matched")

	st.matched = req
	st.phase = phaseCopy
	p.scheduleResume(stack, delay)
}

func (p *ProcessQueues) shortListCopy(stack *callStack, st *step) {
	msg := st.current()
	req := st.matched

	req.setResp(msg.hdr.Tag, msg.hdr.Rank, msg.hdr.Count)

	var delay sim.VTimeInSec
	if msg.kind == kindLoopback || !p.isLong(msg.hdr.Length()) {
		copied := CopyIoVec(req.ioVec, msg.payload, req.Length())
		delay = p.cost.RxMemcpyDelay(copied)
	}

	st.phase = phaseComplete
	p.scheduleResume(stack, delay)
}

func (p *ProcessQueues) shortListComplete(stack *callStack, st *step) {
	msg := st.current()
	req := st.matched

	switch {
	case msg.kind == kindLoopback:
		req.protocol = ProtocolLoopback
		p.complete(req, 0)
		p.looper.LoopRespond(msg.srcCore, msg.sendReq)
	case !p.isLong(msg.hdr.Length()):
		req.protocol = ProtocolEager
		p.complete(req, p.cost.RecvReqFiniDelay(req.Length()))
	default:
		req.protocol = ProtocolRendezvous
		req.ackKey = msg.hdr.Key
		req.ackNID = msg.srcNID

		tracing.AddTaskStep(req.ID, p, "get")

		p.nic.Get(msg.srcNID, msg.hdr.Key, req.ioVec, func() {
			p.longGetFiniQ.Add(req)
			p.raise()
		})
	}

	st.list[st.idx] = nil
	st.idx++
	st.phase = phaseSearch
	st.matched = nil

	p.shortListSearch(stack, st)
}

// complete marks the request as done. The caller observes the delay when it
// waits for the request.
func (p *ProcessQueues) complete(req *CommReq, delay sim.VTimeInSec) {
	req.setDone(delay)

	p.logger.Debug("request done",
		zap.String("req", req.ID),
		zap.Stringer("dir", req.dir),
		zap.String("protocol", req.protocol),
		zap.Float64("delay", float64(delay)))

	tracing.EndTask(req.ID, p)

	if req.dir == DirSend {
		p.report(p.metricHook.SendCompleted, req.protocol)
	} else {
		p.report(p.metricHook.RecvCompleted, req.protocol)
	}
}

func (p *ProcessQueues) report(fn func(attrs map[string]string), protocol string) {
	attrs := map[string]string{"node": p.name}
	if protocol != "" {
		attrs["protocol"] = protocol
	}

	fn(attrs)
}

// Summary lists what is left in the queues of an endpoint.
type Summary struct {
	PostedRecvs     int
	UnexpectedMsgs  int
	LongAcks        int
	LongGetFinis    int
	LoopResponses   int
	PostedShortBufs int
	MainStackDepth  int
	IntStackDepth   int
	WaitArmed       bool
	Interrupt       InterruptStats
}

// Finish returns the residual state of the endpoint.
func (p *ProcessQueues) Finish() Summary {
	return Summary{
		PostedRecvs:     p.posted.len(),
		UnexpectedMsgs:  len(p.unexpected),
		LongAcks:        p.longAckQ.Length(),
		LongGetFinis:    p.longGetFiniQ.Length(),
		LoopResponses:   p.loopResp.Length(),
		PostedShortBufs: p.pool.numPosted(),
		MainStackDepth:  p.mainStack.len(),
		IntStackDepth:   p.intStack.len(),
		WaitArmed:       p.intr.armed != nil,
		Interrupt:       p.intr.stats,
	}
}

// Handle logs the residual state when the simulation ends.
func (p *ProcessQueues) Handle(now sim.VTimeInSec) {
	s := p.Finish()

	p.logger.Info("endpoint finished",
		zap.Float64("time", float64(now)),
		zap.Int("posted_recvs", s.PostedRecvs),
		zap.Int("unexpected_msgs", s.UnexpectedMsgs),
		zap.Int("loop_responses", s.LoopResponses),
		zap.Int("posted_short_bufs", s.PostedShortBufs),
		zap.Int("main_stack", s.MainStackDepth),
		zap.Uint64("interrupt_passes", s.Interrupt.Passes),
		zap.Uint64("interrupt_missed", s.Interrupt.Missed))
}
