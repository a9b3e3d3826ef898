package signals

import (
	"context"

	"github.com/maniartech/signals"
)

// CheckInProcessedData describes the outcome of one check-in submission
type CheckInProcessedData struct {
	Name     string
	Accepted bool
	// Average is only meaningful for accepted check-ins
	Average float64
	// Problems is the number of rejected days for a refused check-in
	Problems int
}

// CheckInProcessed fires once per submission, after it was either saved or refused.
// Emit returns once every listener has run.
var CheckInProcessed = signals.New[CheckInProcessedData]()

// EmitCheckInProcessed emits the outcome of a submission
func EmitCheckInProcessed(ctx context.Context, data CheckInProcessedData) {
	CheckInProcessed.Emit(ctx, data)
}

// OnCheckInProcessed registers a handler for submission outcomes
func OnCheckInProcessed(handler func(ctx context.Context, data CheckInProcessedData), key ...string) {
	if len(key) > 0 {
		CheckInProcessed.AddListener(handler, key[0])
	} else {
		CheckInProcessed.AddListener(handler)
	}
}

// RemoveCheckInProcessed unregisters the handler added with the given key
func RemoveCheckInProcessed(key string) {
	CheckInProcessed.RemoveListener(key)
}
