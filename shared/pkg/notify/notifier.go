// Package notify sends order confirmations. Every implementation is best-effort:
// an empty destination yields Skipped, a transport error yields Failed together
// with the error, and callers decide whether to care.
package notify

import "context"

type Outcome string

const (
	Delivered Outcome = "delivered"
	Skipped   Outcome = "skipped"
	Failed    Outcome = "failed"
)

type Notifier interface {
	Notify(ctx context.Context, subject, message string) (Outcome, error)
}
