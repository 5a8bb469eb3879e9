package client

// Notifier receives terminal success and error events for user-facing
// display. This layer only decides what to report, never how it renders.
// The transparent 401-refresh success path is not reported.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string) {}

// NopNotifier returns a Notifier discarding every event.
func NopNotifier() Notifier { return nopNotifier{} }
