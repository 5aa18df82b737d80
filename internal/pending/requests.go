package pending

import (
	"github.com/cockroachdb/errors"
	"github.com/puzpuzpuz/xsync/v3"
)

// ErrDuplicateRequest is returned when a request is tracked under a response
// id that is already outstanding.
var ErrDuplicateRequest = errors.New("duplicate response id")

// Requests tracks outstanding requests by response id until the router
// retires them on a response or a timeout. It is safe for concurrent use.
type Requests struct {
	outstanding *xsync.MapOf[string, Request]
}

// NewRequests returns an empty table.
func NewRequests() *Requests {
	return &Requests{outstanding: xsync.NewMapOf[string, Request]()}
}

// Track registers req until it is retired.
func (r *Requests) Track(req Request) error {
	if _, loaded := r.outstanding.LoadOrStore(req.ResponseID, req); loaded {
		return errors.Wrapf(ErrDuplicateRequest, "[pending] - %s", req.ResponseID)
	}
	return nil
}

// Retire removes and returns the request tracked under id.
func (r *Requests) Retire(id string) (Request, bool) {
	return r.outstanding.LoadAndDelete(id)
}

// Len returns the number of outstanding requests.
func (r *Requests) Len() int { return r.outstanding.Size() }
