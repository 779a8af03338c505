package upstream

import "context"

type callerKey struct{}

// Caller identifies the inbound request an upstream call is made on behalf of.
type Caller struct {
	RequestID    string
	ForwardedFor string
}

// WithCaller stores caller details on ctx so repositories need not thread them
// through every signature.
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFrom returns the caller stored on ctx, if any.
func CallerFrom(ctx context.Context) Caller {
	caller, _ := ctx.Value(callerKey{}).(Caller)
	return caller
}
