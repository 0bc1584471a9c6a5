package http

import "context"

type contextKey string

const (
	memberIDKey  contextKey = "member-id"
	requestIDKey contextKey = "request-id"
)

// WithMemberID returns a context carrying the authenticated member's ID.
// Handlers read it back with MemberIDFromContext; services never touch the
// context for identity, they take the ID as an explicit argument.
func WithMemberID(ctx context.Context, memberID int32) context.Context {
	return context.WithValue(ctx, memberIDKey, memberID)
}

func MemberIDFromContext(ctx context.Context) (int32, bool) {
	id, ok := ctx.Value(memberIDKey).(int32)
	return id, ok
}

func requestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
