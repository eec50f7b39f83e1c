package ctrlmsg

// Pool bounds used when the builder is not told otherwise.
const (
	DefaultMinPostedShortBuffers = 5
	DefaultMaxPostedShortBuffers = 512
)

// replenishCredits records where the buffers for upcoming receives come from.
// A new receive first consumes a buffer that was posted because the NIC asked
// for one, then a slot freed by a loopback message that did not consume a
// buffer, and only then posts a new buffer.
type replenishCredits struct {
	// needRecv counts the buffers that the NIC asked for and that are not
	// posted yet.
	needRecv int

	// nicRequested counts the buffers that were posted on behalf of the NIC.
	nicRequested int

	// recvLooped counts the loopback messages that arrived without using a
	// buffer.
	recvLooped int
}

type creditSource int

const (
	creditNone creditSource = iota
	creditNICRequested
	creditLooped
)

// take consumes one credit for a new receive, in priority order.
func (c *replenishCredits) take() creditSource {
	switch {
	case c.nicRequested > 0:
		c.nicRequested--
		return creditNICRequested
	case c.recvLooped > 0:
		c.recvLooped--
		return creditLooped
	default:
		return creditNone
	}
}

// A shortBuffer is a receive buffer that is pre-posted to the NIC. It holds
// one match header and up to the short message length of payload.
type shortBuffer struct {
	hdr     []byte
	payload []byte
}

func newShortBuffer(shortMsgLength int) *shortBuffer {
	return &shortBuffer{
		hdr:     make([]byte, MatchHeaderSize),
		payload: make([]byte, shortMsgLength),
	}
}

func (b *shortBuffer) ioVec() []IoVec {
	return []IoVec{MakeIoVec(b.hdr), MakeIoVec(b.payload)}
}

// toMessage turns the received data into a message. length is the number
// of bytes that the NIC reported, header included.
func (b *shortBuffer) toMessage(src NID, length int) *message {
	hdr := DecodeMatchHeader(b.hdr)

	n := length - MatchHeaderSize
	n = max(0, min(n, len(b.payload)))

	payload := []IoVec{{Data: b.payload[:n], Len: n}}

	return newShortBufferMessage(hdr, src, payload)
}

// shortBufferPool tracks the buffers that are posted to the NIC.
type shortBufferPool struct {
	min     int
	max     int
	active  map[*shortBuffer]struct{}
	credits replenishCredits
}

func newShortBufferPool(minBuffers, maxBuffers int) *shortBufferPool {
	return &shortBufferPool{
		min:    minBuffers,
		max:    maxBuffers,
		active: make(map[*shortBuffer]struct{}),
	}
}

func (p *shortBufferPool) numPosted() int {
	return len(p.active)
}

func (p *shortBufferPool) canPost() bool {
	return len(p.active) < p.max
}

func (p *shortBufferPool) belowMin() bool {
	return len(p.active) < p.min && p.canPost()
}

func (p *shortBufferPool) add(b *shortBuffer) {
	p.active[b] = struct{}{}
}

// remove takes the buffer out of the active set. It reports false if the
// buffer was not posted.
func (p *shortBufferPool) remove(b *shortBuffer) bool {
	if _, ok := p.active[b]; !ok {
		return false
	}

	delete(p.active, b)

	return true
}
