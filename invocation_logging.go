package journey

import "time"

// InvocationLogEvent describes a capability invocation for logging.
type InvocationLogEvent struct {
	Capability string
	Duration   time.Duration
	Err        error
}

// InvocationLogger records capability invocations.
type InvocationLogger interface {
	LogInvocation(InvocationLogEvent)
}

// InvocationLoggerFunc adapts a function to InvocationLogger.
type InvocationLoggerFunc func(InvocationLogEvent)

// LogInvocation implements InvocationLogger.
func (f InvocationLoggerFunc) LogInvocation(event InvocationLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopInvocationLogger struct{}

func (noopInvocationLogger) LogInvocation(InvocationLogEvent) {}
