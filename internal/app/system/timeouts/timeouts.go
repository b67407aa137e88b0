// Package timeouts centralizes the context deadlines handlers put on
// store calls, so each operation picks a budget by class instead of
// inventing one per call site.
//
// Classes, narrow to wide:
//   - Ping: mongo connectivity checks (startup ping, /health)
//   - Short: single-document reads and writes (lookups, status flips)
//   - Medium: list queries and multi-step writes (rosters, score updates)
//   - Long: aggregations and fan-out work (dashboard rollups, notification sends)
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
	long   = 30 * time.Second
)

// Ping is the budget for connectivity checks.
func Ping() time.Duration { return ping }

// Short is the budget for single-document operations.
func Short() time.Duration { return short }

// Medium is the budget for list queries and multi-step writes.
func Medium() time.Duration { return medium }

// Long is the budget for aggregations and fan-out work.
func Long() time.Duration { return long }
