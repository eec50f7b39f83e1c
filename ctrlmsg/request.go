package ctrlmsg

import (
	"log"

	"github.com/sarchlab/nicmsg/sim"
)

// Direction tells if a CommReq sends or receives.
type Direction int

// The directions of a CommReq.
const (
	DirSend Direction = iota
	DirRecv
)

func (d Direction) String() string {
	if d == DirSend {
		return "send"
	}

	return "recv"
}

// Status describes the message that satisfied a receive request.
type Status struct {
	Rank  RankID
	Tag   Tag
	Count uint32
}

// A CommReq is a communication operation issued by the user. The caller owns
// the request. The message layer only reads and updates it until it is done.
type CommReq struct {
	ID string

	dir      Direction
	hdr      MatchHeader
	destRank RankID
	ioVec    []IoVec
	blocking bool
	ignore   uint64

	done   bool
	delay  sim.VTimeInSec
	status Status

	protocol string

	ackKey Key
	ackNID NID
}

// NewSendReq creates a request that sends count elements of elementSize
// bytes, taken from the vectors, to the rank in the group.
func NewSendReq(
	vec []IoVec,
	count, elementSize uint32,
	dest RankID,
	tag Tag,
	group GroupID,
	blocking bool,
) *CommReq {
	return &CommReq{
		ID:  sim.GetIDGenerator().Generate(),
		dir: DirSend,
		hdr: MatchHeader{
			Tag:         tag,
			Group:       group,
			Count:       count,
			ElementSize: elementSize,
		},
		destRank: dest,
		ioVec:    vec,
		blocking: blocking,
	}
}

// NewRecvReq creates a request that receives count elements of elementSize
// bytes into the vectors. src may be AnySrc and tag may be AnyTag. Bits set in
// ignore are not compared when matching tags.
func NewRecvReq(
	vec []IoVec,
	count, elementSize uint32,
	src RankID,
	tag Tag,
	group GroupID,
	blocking bool,
	ignore uint64,
) *CommReq {
	return &CommReq{
		ID:  sim.GetIDGenerator().Generate(),
		dir: DirRecv,
		hdr: MatchHeader{
			Rank:        src,
			Tag:         tag,
			Group:       group,
			Count:       count,
			ElementSize: elementSize,
		},
		ioVec:    vec,
		blocking: blocking,
		ignore:   ignore,
	}
}

// Direction returns if the request sends or receives.
func (r *CommReq) Direction() Direction {
	return r.dir
}

// Header returns the match header of the request.
func (r *CommReq) Header() MatchHeader {
	return r.hdr
}

// DestRank returns the destination rank of a send request.
func (r *CommReq) DestRank() RankID {
	return r.destRank
}

// Length returns the number of payload bytes.
func (r *CommReq) Length() int {
	return r.hdr.Length()
}

// IoVec returns the buffers of the request.
func (r *CommReq) IoVec() []IoVec {
	return r.ioVec
}

// IsBlocking tells if the caller waits for the request before it returns.
func (r *CommReq) IsBlocking() bool {
	return r.blocking
}

// Ignore returns the bits of the tag that are not compared when matching.
func (r *CommReq) Ignore() uint64 {
	return r.ignore
}

// IsDone tells if the request has completed.
func (r *CommReq) IsDone() bool {
	return r.done
}

// Delay returns the time that the completion still costs the caller once it
// observes the request as done.
func (r *CommReq) Delay() sim.VTimeInSec {
	return r.delay
}

// Status returns the envelope of the message that completed a receive
// request.
func (r *CommReq) Status() Status {
	return r.status
}

// Protocol returns the transport that was selected for the request, one of
// "eager", "rendezvous" and "loopback". It is empty until the request is
// matched or sent.
func (r *CommReq) Protocol() string {
	return r.protocol
}

func (r *CommReq) setSrcRank(rank RankID) {
	r.hdr.Rank = rank
}

func (r *CommReq) setResp(tag Tag, rank RankID, count uint32) {
	r.status = Status{Rank: rank, Tag: tag, Count: count}
}

func (r *CommReq) setDone(delay sim.VTimeInSec) {
	if r.done {
		log.Panicf("request %s completed twice", r.ID)
	}

	r.done = true
	r.delay = delay
}

// A WaitReq is a wait call on a request. It only lives for the duration of
// the call.
type WaitReq struct {
	req *CommReq
}

// NewWaitReq creates a wait on the request.
func NewWaitReq(req *CommReq) *WaitReq {
	return &WaitReq{req: req}
}

// IsDone tells if the waited request has completed.
func (w *WaitReq) IsDone() bool {
	return w.req.IsDone()
}

// Delay returns the completion delay of the waited request.
func (w *WaitReq) Delay() sim.VTimeInSec {
	return w.req.Delay()
}

// getInfo tracks a long send that waits for its acknowledgement.
type getInfo struct {
	req    *CommReq
	hdr    []byte
	nid    NID
	key    Key
	length int
}
