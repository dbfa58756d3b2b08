// Package notify delivers out-of-band text messages to users' Telegram
// accounts. Delivery is best-effort: it never decides the outcome of the
// transaction that triggered it.
package notify

import "context"

type Sender interface {
	Send(ctx context.Context, recipientID int64, text string) error
}
