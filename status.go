package latticekv

import (
	"github.com/cockroachdb/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Status translates an error returned by a Serializer into a gRPC status
// error a request handler can return to its client. nil maps to nil.
func Status(err error) error {
	if err == nil {
		return nil
	}
	return status.Error(Code(err), err.Error())
}

// Code returns the gRPC code for an error returned by a Serializer.
func Code(err error) codes.Code {
	switch {
	case err == nil:
		return codes.OK
	case errors.Is(err, ErrNotFound):
		return codes.NotFound
	case errors.Is(err, ErrParse):
		return codes.DataLoss
	case errors.Is(err, ErrInvalidKey):
		return codes.InvalidArgument
	case errors.Is(err, ErrIO):
		return codes.Unavailable
	}
	return codes.Internal
}
