package notify

import "log/slog"

// Notifier delivers account emails. Delivery is best-effort: callers log
// failures and never roll back the mutation that triggered the send.
type Notifier interface {
	SendEmailVerification(address, token string) error
	SendPasswordReset(address, token string) error
}

// LogNotifier is the default sender; it records the event without the
// token so secrets never reach the logs.
type LogNotifier struct{}

func (LogNotifier) SendEmailVerification(address, _ string) error {
	slog.Info("email verification issued", "address", address)
	return nil
}

func (LogNotifier) SendPasswordReset(address, _ string) error {
	slog.Info("password reset issued", "address", address)
	return nil
}
