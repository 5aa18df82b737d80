package store_test

import (
	"fmt"

	"github.com/arya-analytics/latticekv/internal/lattice"
	"github.com/arya-analytics/latticekv/internal/record"
	"github.com/arya-analytics/latticekv/internal/store"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/sync/errgroup"
)

var _ = Describe("Store", func() {
	Describe("LWW", func() {
		var s *store.Store[lattice.LWW]
		BeforeEach(func() { s = store.New(record.LWW) })
		It("Should return bottom and false for a key never written", func() {
			v, ok := s.Get("missing")
			Expect(ok).To(BeFalse())
			Expect(v.IsBottom()).To(BeTrue())
			Expect(s.Size("missing")).To(Equal(0))
		})
		It("Should store the input verbatim on the first put", func() {
			in := lattice.NewLWW(5, []byte("a"))
			Expect(s.Put("k1", in)).To(Equal(record.LWW.Size(in)))
			v, ok := s.Get("k1")
			Expect(ok).To(BeTrue())
			Expect(v.Equal(in)).To(BeTrue())
		})
		It("Should never let an older timestamp overwrite a newer one", func() {
			s.Put("k1", lattice.NewLWW(5, []byte("a")))
			s.Put("k1", lattice.NewLWW(3, []byte("b")))
			v, _ := s.Get("k1")
			Expect(v.Timestamp()).To(Equal(uint64(5)))
			Expect(v.Reveal().Value).To(Equal([]byte("a")))
		})
		It("Should report the size of the merged value", func() {
			s.Put("k1", lattice.NewLWW(5, []byte("longer-value")))
			n := s.Put("k1", lattice.NewLWW(1, []byte("x")))
			Expect(n).To(Equal(record.LWW.Size(lattice.NewLWW(5, []byte("longer-value")))))
			Expect(s.Size("k1")).To(Equal(n))
		})
		It("Should delete entries outright", func() {
			s.Put("k1", lattice.NewLWW(5, []byte("a")))
			Expect(s.Remove("k1")).To(BeTrue())
			Expect(s.Remove("k1")).To(BeFalse())
			_, ok := s.Get("k1")
			Expect(ok).To(BeFalse())
			Expect(s.Len()).To(Equal(0))
		})
	})
	Describe("Set", func() {
		var s *store.Store[lattice.Set]
		BeforeEach(func() { s = store.New(record.Set) })
		It("Should merge puts by union", func() {
			s.Put("k2", lattice.NewSet([]byte("x"), []byte("y")))
			s.Put("k2", lattice.NewSet([]byte("y"), []byte("z")))
			v, ok := s.Get("k2")
			Expect(ok).To(BeTrue())
			Expect(v.Reveal()).To(Equal([][]byte{[]byte("x"), []byte("y"), []byte("z")}))
		})
		It("Should not lose elements under concurrent puts", func() {
			var g errgroup.Group
			for i := 0; i < 64; i++ {
				i := i
				g.Go(func() error {
					s.Put("shared", lattice.NewSet([]byte(fmt.Sprintf("e%d", i))))
					return nil
				})
			}
			Expect(g.Wait()).To(Succeed())
			v, _ := s.Get("shared")
			Expect(v.Len()).To(Equal(64))
		})
		It("Should visit every key in Range", func() {
			s.Put("a", lattice.NewSet([]byte("1")))
			s.Put("b", lattice.NewSet([]byte("2")))
			seen := make(map[string]bool)
			s.Range(func(key string, _ lattice.Set) bool {
				seen[key] = true
				return true
			})
			Expect(seen).To(HaveLen(2))
			Expect(s.Len()).To(Equal(2))
		})
	})
})
