package service

import "context"

// Alert is one operational message destined for a chat channel.
type Alert struct {
	Message string // Human-readable alert text.
	Channel string // Target channel, e.g. "potential-spam".
	Sender  string // Label the message is posted under.
	Icon    string // Emoji shorthand shown next to the sender, e.g. ":exclamation:".
}

// AlertNotifier delivers operational alerts to a chat channel. Calls are
// fire-and-forget from the resolver's point of view: a delivery failure is
// logged by the caller and never fails the surrounding operation.
type AlertNotifier interface {
	Notify(ctx context.Context, alert Alert) error
}
