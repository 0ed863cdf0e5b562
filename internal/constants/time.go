package constants

import "time"

// PollInterval is the delay between /state polls in the polling loop.
const PollInterval = 500 * time.Millisecond

// PollMaxAttempts is the default number of /state polls before giving up.
const PollMaxAttempts = 10

// HeartbeatInterval is the interval between WebSocket ping messages.
const HeartbeatInterval = 30 * time.Second

// BuildSettleDelay is how long the agent waits after triggering a build
// before fetching the error list.
const BuildSettleDelay = 2 * time.Second

// SpinnerTickerInterval is the animation interval for CLI spinners.
const SpinnerTickerInterval = 100 * time.Millisecond

// MillisecondsPerSecond converts millisecond timestamps to seconds.
const MillisecondsPerSecond = 1000
