package alertingtest

import (
	"testing"

	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/alerting"
)

func TestMemoryStoreContract(t *testing.T) {
	TestTrackingStoreContract(t, func() alerting.TrackingStore { return NewMemoryStore() })
}
