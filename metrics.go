package latticekv

import (
	"github.com/arya-analytics/latticekv/internal/serializer"
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterMetrics registers the serializer metrics with r. Registering with
// the same registry twice is not an error.
func RegisterMetrics(r prometheus.Registerer) error {
	for _, c := range serializer.Collectors() {
		if err := r.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
