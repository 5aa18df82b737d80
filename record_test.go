package latticekv_test

import (
	"github.com/arya-analytics/latticekv"
	"github.com/arya-analytics/latticekv/mock"
	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Records", func() {
	It("Should decode what it encodes", func() {
		v, err := latticekv.DecodeLWW(latticekv.EncodeLWW(7, []byte("x")))
		Expect(err).ToNot(HaveOccurred())
		Expect(v.Reveal().Timestamp).To(Equal(uint64(7)))
		Expect(v.Reveal().Value).To(Equal([]byte("x")))
		s, err := latticekv.DecodeSet(latticekv.EncodeSet([]byte("b"), []byte("a")))
		Expect(err).ToNot(HaveOccurred())
		Expect(s.Reveal()).To(Equal([][]byte{[]byte("a"), []byte("b")}))
	})
	It("Should reject garbage", func() {
		_, err := latticekv.DecodeLWW([]byte{0xff, 0xff})
		Expect(err).To(HaveOccurred())
	})
	Describe("Clock", func() {
		It("Should refuse ids that would collide with smaller ones", func() {
			_, err := latticekv.NewClock(latticekv.MaxClockID + 1)
			Expect(errors.Is(err, latticekv.ErrInvalidClockID)).To(BeTrue())
		})
		It("Should let the latest local write win on every replica", func() {
			b := mock.NewMemoryTierBuilder()
			net := mock.NewNetwork()
			addrs := []latticekv.Address{"a", "b"}
			var clocks []*latticekv.Clock
			for _, id := range []uint32{1, 2} {
				c, err := latticekv.NewClock(id)
				Expect(err).ToNot(HaveOccurred())
				clocks = append(clocks, c)
			}
			for _, addr := range addrs {
				lww, err := b.New(latticekv.LWW)
				Expect(err).ToNot(HaveOccurred())
				net.Join(addr, mock.Replica{latticekv.LWW: lww})
			}
			for i, v := range []string{"first", "second", "third"} {
				from := i % 2
				ts := clocks[from].Next()
				clocks[1-from].Observe(ts)
				Expect(net.Write(addrs[from], latticekv.LWW, "k", latticekv.EncodeLWW(ts, []byte(v)))).To(Succeed())
			}
			for addr, g := range net.Flush() {
				Expect(net.Deliver(addr, g)).To(Succeed())
			}
			for _, addr := range addrs {
				raw, err := net.Replica(addr)[latticekv.LWW].Get("k")
				Expect(err).ToNot(HaveOccurred())
				v, err := latticekv.DecodeLWW(raw)
				Expect(err).ToNot(HaveOccurred())
				Expect(v.Reveal().Value).To(Equal([]byte("third")))
			}
		})
	})
})
