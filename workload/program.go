// Package workload drives the message layer with sequential rank programs.
package workload

import (
	"github.com/sarchlab/nicmsg/ctrlmsg"
	"github.com/sarchlab/nicmsg/sim"
)

// OpKind is the kind of an operation in a rank program.
type OpKind int

// The kinds of operations.
const (
	OpSend OpKind = iota
	OpRecv
	OpWait
	OpCompute
)

func (k OpKind) String() string {
	switch k {
	case OpSend:
		return "send"
	case OpRecv:
		return "recv"
	case OpWait:
		return "wait"
	case OpCompute:
		return "compute"
	default:
		return "unknown"
	}
}

// An Op is one step of a rank program.
type Op struct {
	Kind OpKind

	// Slot names the request that a send or a receive creates, and that a
	// wait waits for.
	Slot int

	Peer        ctrlmsg.RankID
	Tag         ctrlmsg.Tag
	Group       ctrlmsg.GroupID
	Count       uint32
	ElementSize uint32
	Blocking    bool
	Ignore      uint64

	// Data is the payload of a send. If it is nil, the payload only has a
	// length.
	Data []byte

	// Expect is the payload that a receive must get. If it is set, the
	// receive buffer is backed by memory and checked after the receive is
	// done.
	Expect []byte

	// Duration is the time that a compute step takes.
	Duration sim.VTimeInSec
}

// Length returns the number of payload bytes that the op moves.
func (o Op) Length() int {
	return int(o.Count) * int(o.ElementSize)
}

// A Program is the list of operations that one rank runs, one after another.
type Program struct {
	Ops []Op
}

// Send appends a send of the data to the program.
func (p *Program) Send(
	slot int,
	dest ctrlmsg.RankID,
	tag ctrlmsg.Tag,
	data []byte,
	blocking bool,
) *Program {
	p.Ops = append(p.Ops, Op{
		Kind:        OpSend,
		Slot:        slot,
		Peer:        dest,
		Tag:         tag,
		Count:       uint32(len(data)),
		ElementSize: 1,
		Blocking:    blocking,
		Data:        data,
	})

	return p
}

// SendLen appends a send of length bytes without backing data.
func (p *Program) SendLen(
	slot int,
	dest ctrlmsg.RankID,
	tag ctrlmsg.Tag,
	length int,
	blocking bool,
) *Program {
	p.Ops = append(p.Ops, Op{
		Kind:        OpSend,
		Slot:        slot,
		Peer:        dest,
		Tag:         tag,
		Count:       uint32(length),
		ElementSize: 1,
		Blocking:    blocking,
	})

	return p
}

// Recv appends a receive of length bytes to the program. expect may be nil.
func (p *Program) Recv(
	slot int,
	src ctrlmsg.RankID,
	tag ctrlmsg.Tag,
	length int,
	expect []byte,
	blocking bool,
) *Program {
	p.Ops = append(p.Ops, Op{
		Kind:        OpRecv,
		Slot:        slot,
		Peer:        src,
		Tag:         tag,
		Count:       uint32(length),
		ElementSize: 1,
		Blocking:    blocking,
		Expect:      expect,
	})

	return p
}

// Wait appends a wait for the request in the slot.
func (p *Program) Wait(slot int) *Program {
	p.Ops = append(p.Ops, Op{Kind: OpWait, Slot: slot})
	return p
}

// Compute appends a step that only takes time.
func (p *Program) Compute(d sim.VTimeInSec) *Program {
	p.Ops = append(p.Ops, Op{Kind: OpCompute, Duration: d})
	return p
}
