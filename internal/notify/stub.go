//go:build !linux

package notify

// New returns a no-op notifier on platforms without a notification bus.
func New() (Notifier, error) {
	return noopNotifier{}, nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(_ Notification) (uint32, error) { return 0, nil }

func (noopNotifier) Close(_ uint32) error { return nil }
