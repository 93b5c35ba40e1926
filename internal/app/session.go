// Package app assembles the per-screen sessions: each session owns its stores
// and pollers, mirrors one screen of the dashboard, and has an explicit
// mount/unmount lifecycle.
package app

import "context"

// Session is a mounted screen. Mount performs the cache-first load and starts
// the pollers; Unmount cancels them. A response still in flight at Unmount is
// discarded by the poller's generation guard instead of writing to a detached
// store.
type Session interface {
	Name() string
	Mount(ctx context.Context) error
	Unmount()
}
