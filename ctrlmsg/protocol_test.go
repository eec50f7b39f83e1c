package ctrlmsg

import (
	"encoding/binary"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Wire format", func() {
	It("should lay out the match header in little endian", func() {
		h := MatchHeader{
			Rank:        3,
			Group:       7,
			Tag:         0x0102030405060708,
			Count:       10,
			ElementSize: 4,
			Key:         LongGetKey | 5,
		}

		buf := h.Bytes()

		Expect(buf).To(HaveLen(MatchHeaderSize))
		Expect(binary.LittleEndian.Uint32(buf[0:])).To(Equal(uint32(3)))
		Expect(binary.LittleEndian.Uint32(buf[4:])).To(Equal(uint32(7)))
		Expect(binary.LittleEndian.Uint64(buf[8:])).
			To(Equal(uint64(0x0102030405060708)))
		Expect(binary.LittleEndian.Uint32(buf[16:])).To(Equal(uint32(10)))
		Expect(binary.LittleEndian.Uint32(buf[20:])).To(Equal(uint32(4)))
		Expect(binary.LittleEndian.Uint32(buf[24:])).
			To(Equal(uint32(0x10000005)))
		Expect(DecodeMatchHeader(buf)).To(Equal(h))
		Expect(h.Length()).To(Equal(40))
	})

	It("should carry negative ranks", func() {
		h := MatchHeader{Rank: AnySrc}

		Expect(DecodeMatchHeader(h.Bytes()).Rank).To(Equal(AnySrc))
	})

	It("should encode the control header", func() {
		buf := CtrlHeader{Key: 0x10000009}.Bytes()

		Expect(buf).To(HaveLen(CtrlHeaderSize))
		Expect(DecodeCtrlHeader(buf).Key).To(Equal(Key(0x10000009)))
	})
})

var _ = Describe("keyGenerator", func() {
	It("should mark keys and wrap before the marker", func() {
		g := keyGenerator{marker: LongGetKey, next: LongGetKey - 2}

		Expect(g.generate()).To(Equal(LongGetKey | (LongGetKey - 2)))
		Expect(g.generate()).To(Equal(LongGetKey | (LongGetKey - 1)))
		Expect(g.generate()).To(Equal(LongGetKey))
		Expect(g.generate()).To(Equal(LongGetKey | 1))
	})
})

var _ = Describe("CopyIoVec", func() {
	It("should scatter and gather across element boundaries", func() {
		src := []IoVec{
			MakeIoVec([]byte{1, 2, 3}),
			MakeIoVec([]byte{4, 5}),
		}
		d1 := make([]byte, 2)
		d2 := make([]byte, 4)
		dst := []IoVec{MakeIoVec(d1), MakeIoVec(d2)}

		n := CopyIoVec(dst, src, 100)

		Expect(n).To(Equal(5))
		Expect(d1).To(Equal([]byte{1, 2}))
		Expect(d2).To(Equal([]byte{3, 4, 5, 0}))
	})

	It("should stop at the limit", func() {
		src := []IoVec{MakeIoVec([]byte{1, 2, 3, 4})}
		d := make([]byte, 4)

		n := CopyIoVec([]IoVec{MakeIoVec(d)}, src, 3)

		Expect(n).To(Equal(3))
		Expect(d).To(Equal([]byte{1, 2, 3, 0}))
	})

	It("should account for elements without data", func() {
		src := []IoVec{{Len: 16}}
		d := make([]byte, 8)

		n := CopyIoVec([]IoVec{MakeIoVec(d), {Len: 16}}, src, 64)

		Expect(n).To(Equal(16))
		Expect(d).To(Equal(make([]byte, 8)))
	})

	It("should skip empty elements", func() {
		src := []IoVec{{}, MakeIoVec([]byte{9})}
		d := make([]byte, 1)

		n := CopyIoVec([]IoVec{{}, MakeIoVec(d)}, src, 1)

		Expect(n).To(Equal(1))
		Expect(d).To(Equal([]byte{9}))
	})
})
