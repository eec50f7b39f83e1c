package ctrlmsg

import "github.com/sarchlab/nicmsg/sim"

// Scheduler defers work on the simulation clock.
type Scheduler interface {
	sim.TimeTeller

	// SchedCallback invokes fn after delay. It never invokes fn
	// synchronously.
	SchedCallback(fn func(), delay sim.VTimeInSec)
}

// RecvCallback is invoked by the NIC when a DMA receive or a message send
// finishes. It reports the source endpoint, the key that the message was
// sent to, and the number of bytes transferred.
type RecvCallback func(src NID, key Key, length int)

// NIC provides the hardware primitives of the network interface. All the
// primitives are asynchronous and invoke their callbacks exactly once.
type NIC interface {
	// NodeID returns the endpoint that the NIC serves.
	NodeID() NID

	// IsLocal tells if the endpoint is on the same node as this NIC.
	IsLocal(nid NID) bool

	// CalcCoreID returns the core on the local node that serves the
	// endpoint.
	CalcCoreID(nid NID) int

	// PioSend sends the vectors to the queue selected by key on the
	// destination endpoint. The callback fires when the data has left.
	PioSend(dest NID, key Key, vec []IoVec, callback func())

	// DmaRecv posts a receive buffer to the queue selected by key. src may be
	// AnyNID.
	DmaRecv(src NID, key Key, vec []IoVec, callback RecvCallback)

	// Get pulls the region that the remote endpoint registered with key into
	// the vectors.
	Get(nid NID, key Key, vec []IoVec, callback func())

	// RegMem registers the vectors so that nid can pull them with key. The
	// callback may be nil.
	RegMem(nid NID, key Key, vec []IoVec, callback func())
}

// Looper moves messages between cores of the same node without touching the
// wire.
type Looper interface {
	// LoopSend hands the vectors of a send request to the destination core.
	// The vectors are not copied.
	LoopSend(vec []IoVec, destCore int, key *CommReq)

	// LoopRespond tells the source core that the send request identified by
	// key has been consumed.
	LoopRespond(srcCore int, key *CommReq)
}

// LoopReceiver is the receiving end of a Looper.
type LoopReceiver interface {
	// LoopRequest delivers a send request from another core of the node.
	LoopRequest(srcCore int, vec []IoVec, key *CommReq)

	// LoopResponse delivers the response to a previous LoopSend.
	LoopResponse(srcCore int, key *CommReq)
}

// GroupMap resolves group ranks to endpoints.
type GroupMap interface {
	// NID returns the endpoint of the rank in the group.
	NID(group GroupID, rank RankID) NID

	// MyRank returns the rank of the caller in the group.
	MyRank(group GroupID) RankID
}

// CostModel tells how long the operations of the message layer take. All the
// functions must be pure.
type CostModel interface {
	ShortMsgLength() int

	TxDelay(length int) sim.VTimeInSec
	TxNicDelay() sim.VTimeInSec
	TxMemcpyDelay(length int) sim.VTimeInSec
	RxDelay(length int) sim.VTimeInSec
	RxNicDelay() sim.VTimeInSec
	RxMemcpyDelay(length int) sim.VTimeInSec
	RxPostDelay(length int) sim.VTimeInSec
	RegRegionDelay(length int) sim.VTimeInSec
	MatchDelay(numScanned int) sim.VTimeInSec
	SendReqFiniDelay(length int) sim.VTimeInSec
	RecvReqFiniDelay(length int) sim.VTimeInSec
	SendAckDelay() sim.VTimeInSec
}

// MetricHook receives counters from the message layer.
type MetricHook interface {
	SendCompleted(attrs map[string]string)
	RecvCompleted(attrs map[string]string)
	UnexpectedMessage(attrs map[string]string)
	InterruptPass(attrs map[string]string)
	InterruptMissed(attrs map[string]string)
}
