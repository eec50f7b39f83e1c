package ctrlmsg

import (
	"log"

	"go.uber.org/zap"

	"github.com/sarchlab/nicmsg/tracing"
)

// Names of the transports that a request can be sent with.
const (
	ProtocolEager      = "eager"
	ProtocolRendezvous = "rendezvous"
	ProtocolLoopback   = "loopback"
)

// loopSend hands a send request to a core on the same node. The header is
// encoded in front of the payload vectors, which are not copied.
func (p *ProcessQueues) loopSend(req *CommReq, dest NID) {
	req.protocol = ProtocolLoopback

	vec := make([]IoVec, 0, len(req.ioVec)+1)
	vec = append(vec, MakeIoVec(req.hdr.Bytes()))
	vec = append(vec, req.ioVec...)

	destCore := p.nic.CalcCoreID(dest)

	p.logger.Debug("loop send",
		zap.String("req", req.ID),
		zap.Int("dest_core", destCore),
		zap.Int("len", req.Length()))
	tracing.AddTaskStep(req.ID, p, "loop_send")

	p.looper.LoopSend(vec, destCore, req)
}

// LoopRequest delivers a send request from another core of the node. The
// message goes to the unexpected queue without using a short buffer.
func (p *ProcessQueues) LoopRequest(srcCore int, vec []IoVec, key *CommReq) {
	if len(vec) == 0 || len(vec[0].Data) < MatchHeaderSize {
		log.Panicf("%s: loopback request from core %d has no header",
			p.name, srcCore)
	}

	hdr := DecodeMatchHeader(vec[0].Data)
	msg := newLoopbackMessage(hdr, srcCore, vec[1:], key)

	p.logger.Debug("loop request",
		zap.Int("src_core", srcCore),
		zap.Int32("rank", int32(hdr.Rank)),
		zap.Uint64("tag", uint64(hdr.Tag)),
		zap.Int("len", hdr.Length()))

	p.pool.credits.recvLooped++
	p.enqueueUnexpected(msg)
	p.raise()
}

// LoopResponse tells the sender that a loopback request has been consumed.
func (p *ProcessQueues) LoopResponse(srcCore int, key *CommReq) {
	p.logger.Debug("loop response",
		zap.Int("src_core", srcCore),
		zap.String("req", key.ID))

	p.loopResp.Add(key)
	p.raise()
}
