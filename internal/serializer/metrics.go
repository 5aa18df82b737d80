package serializer

import (
	"github.com/arya-analytics/latticekv/internal/record"
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Operations counts serializer calls by outcome.
var Operations = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "latticekv",
	Subsystem: "serializer",
	Name:      "operations",
}, []string{"tier", "kind", "op", "result"})

// BytesWritten counts record bytes persisted by disk tiers.
var BytesWritten = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "latticekv",
	Subsystem: "serializer",
	Name:      "bytes_written",
}, []string{"tier", "kind"})

// Collectors returns every metric exported by the package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{Operations, BytesWritten}
}

const (
	tierMemory = "memory"
	tierDisk   = "disk"

	opGet    = "get"
	opPut    = "put"
	opRemove = "remove"
)

func observe(tier string, kind record.Type, op string, err error) {
	Operations.WithLabelValues(tier, kind.String(), op, result(err)).Inc()
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrParse):
		return "parse_failure"
	case errors.Is(err, ErrInvalidKey):
		return "invalid_key"
	case errors.Is(err, ErrIO):
		return "io_failure"
	}
	return "error"
}
