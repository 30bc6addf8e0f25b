//go:build !linux

package notify

// stubNotifier satisfies Notifier where no desktop notification bus
// exists. Every call succeeds without doing anything.
type stubNotifier struct{}

// New returns the no-op notifier used outside Linux.
func New() (Notifier, error) {
	return &stubNotifier{}, nil
}

func (s *stubNotifier) Notify(_ Notification) (uint32, error) {
	return 0, nil
}

func (s *stubNotifier) Close(_ uint32) error {
	return nil
}
