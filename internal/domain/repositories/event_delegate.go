package repositories

// EventDelegate receives operation notifications from a repository. Both
// notifications are best-effort diagnostics: a missing or panicking delegate
// never aborts the operation. All notifications for one instance are
// delivered on the goroutine driving the operation, in production order.
type EventDelegate interface {
	// WillStartTask fires exactly once per operation, strictly before any
	// progress notification, with the argument list about to be passed to
	// the external tool. Embedded credentials are stripped beforehand.
	WillStartTask(arguments []string)

	// DidProgressClone fires once per line of tool output during clone.
	DidProgressClone(line string)
}

// NoopDelegate implements EventDelegate with default no-op behavior. Embed
// it to implement only the notifications a consumer cares about.
type NoopDelegate struct{}

func (NoopDelegate) WillStartTask(_ []string) {}

func (NoopDelegate) DidProgressClone(_ string) {}
