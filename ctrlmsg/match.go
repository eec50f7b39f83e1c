package ctrlmsg

// matchHeader tells if a message with the candidate header can satisfy the
// posted receive. Bits set in ignore are not compared when matching tags.
func matchHeader(candidate, posted MatchHeader, ignore uint64) bool {
	if posted.Tag != AnyTag &&
		uint64(posted.Tag)&^ignore != uint64(candidate.Tag)&^ignore {
		return false
	}

	if posted.Rank != AnySrc && posted.Rank != candidate.Rank {
		return false
	}

	return posted.Group == candidate.Group &&
		posted.Count == candidate.Count &&
		posted.ElementSize == candidate.ElementSize
}

// postedQueue holds the receive requests that have not been matched yet, in
// the order they are posted.
type postedQueue struct {
	reqs []*CommReq
}

func (q *postedQueue) push(req *CommReq) {
	q.reqs = append(q.reqs, req)
}

func (q *postedQueue) len() int {
	return len(q.reqs)
}

// search removes and returns the first posted request that matches the
// header. It also returns the number of requests that were looked at.
func (q *postedQueue) search(hdr MatchHeader) (*CommReq, int) {
	for i, req := range q.reqs {
		if !matchHeader(hdr, req.hdr, req.ignore) {
			continue
		}

		copy(q.reqs[i:], q.reqs[i+1:])
		q.reqs[len(q.reqs)-1] = nil
		q.reqs = q.reqs[:len(q.reqs)-1]

		return req, i + 1
	}

	return nil, len(q.reqs)
}
