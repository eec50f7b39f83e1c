package ctrlmsg

// CopyIoVec gathers bytes from src and scatters them into dst, moving at most
// limit bytes. Elements without backing data take part in the length
// accounting but move no bytes. It returns the number of bytes accounted.
func CopyIoVec(dst, src []IoVec, limit int) int {
	copied := 0
	di, doff := 0, 0
	si, soff := 0, 0

	for copied < limit && di < len(dst) && si < len(src) {
		d := dst[di]
		s := src[si]

		n := min(d.Len-doff, s.Len-soff, limit-copied)
		if n > 0 {
			copyBytes(d.Data, doff, s.Data, soff, n)
		}

		copied += n
		doff += n
		soff += n

		if doff >= d.Len {
			di++
			doff = 0
		}

		if soff >= s.Len {
			si++
			soff = 0
		}
	}

	return copied
}

func copyBytes(dst []byte, doff int, src []byte, soff int, n int) {
	if doff >= len(dst) || soff >= len(src) {
		return
	}

	copy(dst[doff:min(doff+n, len(dst))], src[soff:min(soff+n, len(src))])
}
