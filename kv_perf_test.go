package latticekv_test

import (
	"fmt"
	"math/rand"

	"github.com/arya-analytics/latticekv"
	"github.com/arya-analytics/latticekv/mock"
	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type convergenceVars struct {
	name        string
	numReplicas int
	numKeys     int
	numOps      int
	builder     func() *mock.Builder
}

var itervars = []convergenceVars{
	{
		name:        "disk",
		numReplicas: 2,
		numKeys:     4,
		numOps:      100,
		builder:     func() *mock.Builder { return mock.NewMemBuilder() },
	},
	{
		name:        "memory",
		numReplicas: 4,
		numKeys:     8,
		numOps:      200,
		builder:     func() *mock.Builder { return mock.NewMemoryTierBuilder() },
	},
}

var _ = Describe("Convergence", func() {
	for _, v := range itervars {
		v := v
		It(fmt.Sprintf("Should converge %v %s replicas after %v ops on %v keys", v.numReplicas, v.name, v.numOps, v.numKeys), func() {
			var (
				b     = v.builder()
				net   = mock.NewNetwork()
				addrs []latticekv.Address
				rng   = rand.New(rand.NewSource(int64(v.numOps)))
			)
			for i := 0; i < v.numReplicas; i++ {
				lww, err := b.New(latticekv.LWW)
				Expect(err).ToNot(HaveOccurred())
				set, err := b.New(latticekv.Set)
				Expect(err).ToNot(HaveOccurred())
				addr := latticekv.Address(fmt.Sprintf("replica-%d", i))
				net.Join(addr, mock.Replica{latticekv.LWW: lww, latticekv.Set: set})
				addrs = append(addrs, addr)
			}

			By("Writing concurrently conflicting values from every replica")
			for i := 0; i < v.numOps; i++ {
				from := addrs[rng.Intn(len(addrs))]
				key := fmt.Sprintf("key-%d", rng.Intn(v.numKeys))
				ts := uint64(rng.Intn(10))
				lwwPayload := latticekv.EncodeLWW(ts, []byte(fmt.Sprintf("%s-%d", from, i)))
				Expect(net.Write(from, latticekv.LWW, key, lwwPayload)).To(Succeed())
				setPayload := latticekv.EncodeSet([]byte(fmt.Sprintf("%s-%d", from, i)))
				Expect(net.Write(from, latticekv.Set, key, setPayload)).To(Succeed())
			}

			By("Delivering gossip in reverse order, twice")
			flushed := net.Flush()
			Expect(flushed).To(HaveLen(v.numReplicas))
			for round := 0; round < 2; round++ {
				for i := len(addrs) - 1; i >= 0; i-- {
					Expect(net.Deliver(addrs[i], flushed[addrs[i]])).To(Succeed())
				}
			}

			By("Reading identical values from every replica")
			for k := 0; k < v.numKeys; k++ {
				key := fmt.Sprintf("key-%d", k)
				for _, kind := range []latticekv.Kind{latticekv.LWW, latticekv.Set} {
					want, wantErr := net.Replica(addrs[0])[kind].Get(key)
					for _, addr := range addrs[1:] {
						got, err := net.Replica(addr)[kind].Get(key)
						if wantErr != nil {
							Expect(errors.Is(err, latticekv.ErrNotFound)).To(BeTrue())
							continue
						}
						Expect(err).ToNot(HaveOccurred())
						Expect(got).To(Equal(want))
					}
				}
			}
		})
	}
})
