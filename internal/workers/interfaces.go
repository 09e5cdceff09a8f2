// Package workers runs the application's background jobs, currently the
// periodic overdue-bill sweep. It defines the Worker interface and a Workers
// aggregate that starts every configured worker in a unified way.
package workers

// Worker is implemented by background jobs started alongside the HTTP server.
//
// Run is expected to return quickly, spawning goroutines internally; workers
// stop when the application context is cancelled.
type Worker interface {
	Run()
}
