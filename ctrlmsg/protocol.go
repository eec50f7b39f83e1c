// Package ctrlmsg models the control-message layer of a simulated NIC. It
// provides MPI-style two-sided communication (send, recv, wait) on top of the
// primitives of a NIC model, choosing between an eager protocol for short
// messages and a rendezvous protocol for long ones.
//
// Everything runs on a single-threaded discrete-event engine. Operations that
// would block are suspended by pushing steps onto an explicit continuation
// stack, and are resumed by callbacks scheduled on the engine.
package ctrlmsg

import (
	"encoding/binary"
	"math"
)

// RankID identifies a process inside a communication group.
type RankID int32

// GroupID identifies a communication group.
type GroupID uint32

// NID identifies a network endpoint, one per simulated core.
type NID int32

// Tag is the user tag carried by a message.
type Tag uint64

// Key is the tag used on the NIC level. It selects the receive queue that an
// incoming message lands in.
type Key uint32

const (
	// AnyTag matches the tag of any message.
	AnyTag Tag = math.MaxUint64

	// AnySrc matches messages from any source rank.
	AnySrc RankID = -1

	// AnyNID tells the NIC to accept a message from any endpoint.
	AnyNID NID = -1
)

// NIC level keys used by the protocol.
const (
	// ShortMsgQ is the key of the queue that eager messages and rendezvous
	// headers are sent to.
	ShortMsgQ Key = 0xf00d

	// LongGetKey marks the keys that the payload of a long message is
	// registered with.
	LongGetKey Key = 0x10000000

	// LongAckKey marks the keys that the acknowledgement of a long message
	// is sent to. The receiver acknowledges with the get key, so the two
	// share the same marker.
	LongAckKey Key = LongGetKey
)

// MatchHeaderSize is the number of bytes that a MatchHeader occupies on the
// wire.
const MatchHeaderSize = 32

// CtrlHeaderSize is the number of bytes that a CtrlHeader occupies on the
// wire.
const CtrlHeaderSize = 8

// An IoVec is one element of a scatter/gather list. Data may be nil, in which
// case the element only has a length and copies into or out of it move no
// bytes.
type IoVec struct {
	Data []byte
	Len  int
}

// MakeIoVec creates an IoVec that is backed by the given buffer.
func MakeIoVec(data []byte) IoVec {
	return IoVec{Data: data, Len: len(data)}
}

// TotalLen returns the sum of the lengths of all the vectors.
func TotalLen(vec []IoVec) int {
	total := 0
	for _, v := range vec {
		total += v.Len
	}

	return total
}

// MatchHeader is the envelope that travels in front of every message.
type MatchHeader struct {
	Rank        RankID
	Tag         Tag
	Group       GroupID
	Count       uint32
	ElementSize uint32
	Key         Key
}

// Length returns the number of payload bytes that the header describes.
func (h MatchHeader) Length() int {
	return int(h.Count) * int(h.ElementSize)
}

// Encode writes the header into buf, which must hold at least
// MatchHeaderSize bytes.
func (h MatchHeader) Encode(buf []byte) {
	_ = buf[MatchHeaderSize-1]

	binary.LittleEndian.PutUint32(buf[0:], uint32(h.Rank))
	binary.LittleEndian.PutUint32(buf[4:], uint32(h.Group))
	binary.LittleEndian.PutUint64(buf[8:], uint64(h.Tag))
	binary.LittleEndian.PutUint32(buf[16:], h.Count)
	binary.LittleEndian.PutUint32(buf[20:], h.ElementSize)
	binary.LittleEndian.PutUint32(buf[24:], uint32(h.Key))
	binary.LittleEndian.PutUint32(buf[28:], 0)
}

// Bytes returns the wire form of the header.
func (h MatchHeader) Bytes() []byte {
	buf := make([]byte, MatchHeaderSize)
	h.Encode(buf)

	return buf
}

// DecodeMatchHeader reads a header from its wire form.
func DecodeMatchHeader(buf []byte) MatchHeader {
	_ = buf[MatchHeaderSize-1]

	return MatchHeader{
		Rank:        RankID(binary.LittleEndian.Uint32(buf[0:])),
		Group:       GroupID(binary.LittleEndian.Uint32(buf[4:])),
		Tag:         Tag(binary.LittleEndian.Uint64(buf[8:])),
		Count:       binary.LittleEndian.Uint32(buf[16:]),
		ElementSize: binary.LittleEndian.Uint32(buf[20:]),
		Key:         Key(binary.LittleEndian.Uint32(buf[24:])),
	}
}

// CtrlHeader is the acknowledgement that the receiver of a long message sends
// back once it has pulled the payload.
type CtrlHeader struct {
	Key Key
}

// Bytes returns the wire form of the header.
func (h CtrlHeader) Bytes() []byte {
	buf := make([]byte, CtrlHeaderSize)
	binary.LittleEndian.PutUint32(buf[0:], uint32(h.Key))

	return buf
}

// DecodeCtrlHeader reads a control header from its wire form.
func DecodeCtrlHeader(buf []byte) CtrlHeader {
	_ = buf[CtrlHeaderSize-1]

	return CtrlHeader{Key: Key(binary.LittleEndian.Uint32(buf[0:]))}
}

// keyGenerator hands out keys that carry a marker bit. The counter wraps
// before it runs into the marker.
type keyGenerator struct {
	marker Key
	next   Key
}

func (g *keyGenerator) generate() Key {
	k := g.next

	g.next++
	if g.next == g.marker {
		g.next = 0
	}

	return k | g.marker
}
