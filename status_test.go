package latticekv_test

import (
	"github.com/arya-analytics/latticekv"
	"github.com/arya-analytics/latticekv/mock"
	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ = Describe("Status", func() {
	It("Should map nil to nil", func() {
		Expect(latticekv.Status(nil)).To(BeNil())
		Expect(latticekv.Code(nil)).To(Equal(codes.OK))
	})
	It("Should distinguish not found, corrupt, and storage failures", func() {
		Expect(latticekv.Code(errors.Wrap(latticekv.ErrNotFound, "k"))).To(Equal(codes.NotFound))
		Expect(latticekv.Code(errors.Mark(errors.New("bad bytes"), latticekv.ErrParse))).To(Equal(codes.DataLoss))
		Expect(latticekv.Code(errors.Mark(errors.New("disk full"), latticekv.ErrIO))).To(Equal(codes.Unavailable))
		Expect(latticekv.Code(latticekv.ErrInvalidKey)).To(Equal(codes.InvalidArgument))
		Expect(latticekv.Code(errors.New("other"))).To(Equal(codes.Internal))
	})
	It("Should translate serializer errors end to end", func() {
		b := mock.NewMemBuilder()
		ser, err := b.New(latticekv.LWW)
		Expect(err).ToNot(HaveOccurred())
		_, err = ser.Get("missing")
		st, ok := status.FromError(latticekv.Status(err))
		Expect(ok).To(BeTrue())
		Expect(st.Code()).To(Equal(codes.NotFound))
	})
})
