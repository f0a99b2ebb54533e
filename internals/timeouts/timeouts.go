package timeouts

import "time"

const (
	Request      = 60 * time.Second
	PollInterval = 5 * time.Second
	Wait         = 10 * time.Minute
	Download     = 30 * time.Minute
)

// RetryDelays is the pause before each transport-timeout retry. The last entry is
// reused when more retries are configured than delays listed.
var RetryDelays = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

const MaxRetries = 3
