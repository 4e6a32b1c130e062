// Package flashctx carries CLI-scoped request context values (today,
// just the verbose-logging flag) through the command tree.
package flashctx

import "context"

type ctxIndex int

const ctxIndexVerbose ctxIndex = iota

// IsVerbose reports whether verbose logging was requested for ctx.
func IsVerbose(ctx context.Context) bool {
	val := ctx.Value(ctxIndexVerbose)
	if val == nil {
		return false
	}
	return val.(bool)
}

// SetVerbose returns a copy of ctx carrying the verbose flag.
func SetVerbose(ctx context.Context, value bool) context.Context {
	return context.WithValue(ctx, ctxIndexVerbose, value)
}
