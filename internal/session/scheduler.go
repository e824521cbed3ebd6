package session

import "time"

// Handle is a pending scheduled call. *time.Timer satisfies it.
type Handle interface {
	// Stop prevents the call from running. It returns false if the call has
	// already run or been stopped.
	Stop() bool
}

// Scheduler runs f once after d. f must be delivered on the goroutine that
// drives the Session; the terminal UI turns it into a Bubble Tea message.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Handle
}
