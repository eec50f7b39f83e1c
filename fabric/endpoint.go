package fabric

import (
	"fmt"
	"log"

	"github.com/eapache/queue"
	"go.uber.org/zap"

	"github.com/sarchlab/nicmsg/ctrlmsg"
	"github.com/sarchlab/nicmsg/sim"
	"github.com/sarchlab/nicmsg/tracing"
)

// Host is what an endpoint delivers software events to.
type Host interface {
	ctrlmsg.LoopReceiver

	// NeedRecv is called when a message arrives on a key that has no
	// posted receive. The message is held until a receive is posted.
	NeedRecv(nid ctrlmsg.NID, key ctrlmsg.Key, length int)
}

type postedRecv struct {
	src      ctrlmsg.NID
	vec      []ctrlmsg.IoVec
	callback ctrlmsg.RecvCallback
}

type delivery struct {
	id   string
	src  ctrlmsg.NID
	key  ctrlmsg.Key
	data []ctrlmsg.IoVec
}

type regionKey struct {
	peer ctrlmsg.NID
	key  ctrlmsg.Key
}

// An Endpoint is the NIC of one core. It implements the NIC primitives and
// the loopback between the cores of a node.
type Endpoint struct {
	sim.HookableBase

	name   string
	fabric *Fabric
	nid    ctrlmsg.NID
	node   int
	core   int
	host   Host
	logger *zap.Logger

	posted  map[ctrlmsg.Key][]*postedRecv
	pending map[ctrlmsg.Key]*queue.Queue
	regions map[regionKey][]ctrlmsg.IoVec

	bytesSent     uint64
	bytesReceived uint64
}

var (
	_ ctrlmsg.NIC    = (*Endpoint)(nil)
	_ ctrlmsg.Looper = (*Endpoint)(nil)
)

// Name returns the name of the endpoint.
func (e *Endpoint) Name() string {
	return e.name
}

// NodeID returns the endpoint ID.
func (e *Endpoint) NodeID() ctrlmsg.NID {
	return e.nid
}

// AttachHost sets what the endpoint delivers software events to.
func (e *Endpoint) AttachHost(h Host) {
	e.host = h
}

// IsLocal tells if the endpoint is on the same node.
func (e *Endpoint) IsLocal(nid ctrlmsg.NID) bool {
	return e.fabric.nodeOf(nid) == e.node
}

// CalcCoreID returns the core that serves the endpoint within its node.
func (e *Endpoint) CalcCoreID(nid ctrlmsg.NID) int {
	return e.fabric.coreOf(nid)
}

// PioSend copies the vectors out and delivers them to the destination after
// the wire latency. The callback fires when the data has left the endpoint.
func (e *Endpoint) PioSend(
	dest ctrlmsg.NID,
	key ctrlmsg.Key,
	vec []ctrlmsg.IoVec,
	callback func(),
) {
	remote := e.fabric.mustGetEndpoint(dest)
	d := &delivery{
		id:   sim.GetIDGenerator().Generate(),
		src:  e.nid,
		key:  key,
		data: snapshot(vec),
	}
	length := ctrlmsg.TotalLen(d.data)
	txTime := e.fabric.cost.transferTime(length)

	e.bytesSent += uint64(length)

	e.logger.Debug("pio send",
		zap.Int32("dest", int32(dest)),
		zap.Uint32("key", uint32(key)),
		zap.Int("len", length))
	tracing.StartTask(d.id, "", e, "nic", "pio_send", nil)

	if callback != nil {
		e.fabric.sched.SchedCallback(callback, txTime)
	}

	e.fabric.sched.SchedCallback(func() {
		tracing.EndTask(d.id, e)
		remote.arrive(d)
	}, txTime+e.fabric.cost.cfg.WireLatency)
}

func snapshot(vec []ctrlmsg.IoVec) []ctrlmsg.IoVec {
	out := make([]ctrlmsg.IoVec, len(vec))

	for i, v := range vec {
		out[i].Len = v.Len
		if v.Data != nil {
			out[i].Data = append([]byte(nil), v.Data[:min(v.Len, len(v.Data))]...)
		}
	}

	return out
}

func (e *Endpoint) arrive(d *delivery) {
	length := ctrlmsg.TotalLen(d.data)
	e.bytesReceived += uint64(length)

	if r := e.takePosted(d.key, d.src); r != nil {
		e.complete(r, d)
		return
	}

	e.logger.Debug("no posted receive",
		zap.Int32("src", int32(d.src)),
		zap.Uint32("key", uint32(d.key)),
		zap.Int("len", length))

	q, ok := e.pending[d.key]
	if !ok {
		q = queue.New()
		e.pending[d.key] = q
	}

	q.Add(d)

	e.mustHaveHost()
	e.host.NeedRecv(d.src, d.key, length)
}

func (e *Endpoint) takePosted(key ctrlmsg.Key, src ctrlmsg.NID) *postedRecv {
	list := e.posted[key]

	for i, r := range list {
		if r.src != ctrlmsg.AnyNID && r.src != src {
			continue
		}

		list = append(list[:i], list[i+1:]...)
		if len(list) == 0 {
			delete(e.posted, key)
		} else {
			e.posted[key] = list
		}

		return r
	}

	return nil
}

func (e *Endpoint) complete(r *postedRecv, d *delivery) {
	n := ctrlmsg.CopyIoVec(r.vec, d.data, ctrlmsg.TotalLen(r.vec))
	r.callback(d.src, d.key, n)
}

// DmaRecv posts a receive. If a message is already held for the key, it
// completes the receive right away.
func (e *Endpoint) DmaRecv(
	src ctrlmsg.NID,
	key ctrlmsg.Key,
	vec []ctrlmsg.IoVec,
	callback ctrlmsg.RecvCallback,
) {
	r := &postedRecv{src: src, vec: vec, callback: callback}

	if q, ok := e.pending[key]; ok && q.Length() > 0 {
		d := q.Peek().(*delivery)
		if src == ctrlmsg.AnyNID || src == d.src {
			q.Remove()
			if q.Length() == 0 {
				delete(e.pending, key)
			}

			e.fabric.sched.SchedCallback(func() { e.complete(r, d) }, 0)

			return
		}
	}

	e.posted[key] = append(e.posted[key], r)
}

// RegMem makes the vectors readable by the peer with the key.
func (e *Endpoint) RegMem(
	nid ctrlmsg.NID,
	key ctrlmsg.Key,
	vec []ctrlmsg.IoVec,
	callback func(),
) {
	rk := regionKey{peer: nid, key: key}
	if _, ok := e.regions[rk]; ok {
		log.Panicf("%s: key %#x is already registered for %d", e.name, key, nid)
	}

	e.regions[rk] = vec

	if callback != nil {
		e.fabric.sched.SchedCallback(callback, 0)
	}
}

// Get reads the region that the remote endpoint registered for this
// endpoint. The region is released once it is read.
func (e *Endpoint) Get(
	nid ctrlmsg.NID,
	key ctrlmsg.Key,
	vec []ctrlmsg.IoVec,
	callback func(),
) {
	remote := e.fabric.mustGetEndpoint(nid)
	id := sim.GetIDGenerator().Generate()
	length := ctrlmsg.TotalLen(vec)
	latency := 2*e.fabric.cost.cfg.WireLatency +
		e.fabric.cost.transferTime(length)

	tracing.StartTask(id, "", e, "nic", "get", nil)

	e.fabric.sched.SchedCallback(func() {
		rk := regionKey{peer: e.nid, key: key}

		region, ok := remote.regions[rk]
		if !ok {
			log.Panicf("%s: no region with key %#x on %s",
				e.name, key, remote.name)
		}

		delete(remote.regions, rk)

		n := ctrlmsg.CopyIoVec(vec, region, length)
		remote.bytesSent += uint64(n)
		e.bytesReceived += uint64(n)

		tracing.EndTask(id, e)
		callback()
	}, latency)
}

// LoopSend hands a send request to another core of the node.
func (e *Endpoint) LoopSend(
	vec []ctrlmsg.IoVec,
	destCore int,
	key *ctrlmsg.CommReq,
) {
	dest := e.fabric.mustGetEndpoint(e.fabric.nidOf(e.node, destCore))
	dest.mustHaveHost()

	e.fabric.sched.SchedCallback(func() {
		dest.host.LoopRequest(e.core, vec, key)
	}, 0)
}

// LoopRespond tells the source core that its request has been consumed.
func (e *Endpoint) LoopRespond(srcCore int, key *ctrlmsg.CommReq) {
	dest := e.fabric.mustGetEndpoint(e.fabric.nidOf(e.node, srcCore))
	dest.mustHaveHost()

	e.fabric.sched.SchedCallback(func() {
		dest.host.LoopResponse(e.core, key)
	}, 0)
}

func (e *Endpoint) mustHaveHost() {
	if e.host == nil {
		panic(fmt.Sprintf("endpoint %s has no host", e.name))
	}
}

// Stats reports the traffic of the endpoint.
type Stats struct {
	BytesSent     uint64
	BytesReceived uint64
	HeldMessages  int
	PostedRecvs   int
	Regions       int
}

// Stats returns the traffic counters of the endpoint.
func (e *Endpoint) Stats() Stats {
	s := Stats{
		BytesSent:     e.bytesSent,
		BytesReceived: e.bytesReceived,
		Regions:       len(e.regions),
	}

	for _, q := range e.pending {
		s.HeldMessages += q.Length()
	}

	for _, l := range e.posted {
		s.PostedRecvs += len(l)
	}

	return s
}
