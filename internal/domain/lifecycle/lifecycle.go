// Package lifecycle holds shared start-up and shutdown settings.
package lifecycle

import "time"

// DefaultTimeout bounds start-up probes and graceful shutdown of a single resource.
const DefaultTimeout = 10 * time.Second
