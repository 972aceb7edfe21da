// Package proc implements SupervisedChild (design note §9): a small
// abstraction over a spawned external process that hides the pipe-reading,
// timeout-watchdog, and reap bookkeeping the configure and build drivers
// both need. Grounded on the teacher's containerizer exec.CommandContext
// plumbing and its per-OS process-group handling.
package proc
