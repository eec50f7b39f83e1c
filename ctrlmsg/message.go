package ctrlmsg

type messageKind int

const (
	kindShortBuffer messageKind = iota
	kindLoopback
)

func (k messageKind) String() string {
	switch k {
	case kindShortBuffer:
		return "short_buffer"
	case kindLoopback:
		return "loopback"
	default:
		return "unknown"
	}
}

// A message is a datum that has landed on this endpoint and waits to be
// matched. It is owned by whichever queue holds it.
type message struct {
	kind messageKind
	hdr  MatchHeader

	// payload is the data of the message. For a short buffer it is the part
	// of the buffer that received data. For a loopback message it is the
	// vector list of the sender.
	payload []IoVec

	// Set for short buffers.
	srcNID NID

	// Set for loopback messages.
	srcCore int
	sendReq *CommReq
}

func newShortBufferMessage(hdr MatchHeader, src NID, payload []IoVec) *message {
	return &message{
		kind:    kindShortBuffer,
		hdr:     hdr,
		payload: payload,
		srcNID:  src,
	}
}

func newLoopbackMessage(
	hdr MatchHeader,
	srcCore int,
	payload []IoVec,
	sendReq *CommReq,
) *message {
	return &message{
		kind:    kindLoopback,
		hdr:     hdr,
		payload: payload,
		srcCore: srcCore,
		sendReq: sendReq,
	}
}
