package checks

import (
	"context"
	"time"

	"github.com/vitrine-studio/vitrine/internal/monitoring"
	"github.com/vitrine-studio/vitrine/internal/storage"
)

const defaultStorageTimeout = 2 * time.Second

// Storage reports whether the upload store accepts writes. A failing store
// only degrades the service since read endpoints keep working.
func Storage(store storage.ObjectStore, timeout time.Duration) monitoring.Check {
	return monitoring.NewCheck("storage", func(ctx context.Context) monitoring.ProbeResult {
		start := time.Now()
		if store == nil {
			return monitoring.ProbeResult{
				Status:   monitoring.StatusDegraded,
				Details:  "upload storage not configured",
				Duration: time.Since(start),
			}
		}

		probeCtx, cancel := context.WithTimeout(ctx, chooseTimeout(timeout, defaultStorageTimeout))
		defer cancel()

		result := monitoring.ResultFromError("storage", store.Check(probeCtx), time.Since(start))
		if result.Status == monitoring.StatusDown {
			result.Status = monitoring.StatusDegraded
		}
		return result
	})
}
