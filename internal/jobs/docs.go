// Package jobs contains the scheduled background work of the freight engine.
//
// The package includes:
//   - QuoteSweepJob: periodically evicts expired quotes from the in-memory cache
//
// Jobs are coordinated by JobManager, which starts and stops them together
// with the application lifecycle.
package jobs
