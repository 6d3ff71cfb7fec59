package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

type ctxKey string

const (
	userIDKey    ctxKey = "user_id"
	userRoleKey  ctxKey = "user_role"
	requestIDKey ctxKey = "request_id"
)

// WithUserID stores the user ID in the context.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx extracts the user ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithUserRole stores the user role in the context.
func WithUserRole(ctx context.Context, role domain.UserRole) context.Context {
	return context.WithValue(ctx, userRoleKey, role)
}

// UserRoleFromCtx extracts the user role. Missing or unknown roles are plain users.
func UserRoleFromCtx(ctx context.Context) domain.UserRole {
	role, ok := ctx.Value(userRoleKey).(domain.UserRole)
	if !ok || !role.IsValid() {
		return domain.UserRoleUser
	}
	return role
}

// IsAdminCtx reports whether the context user is an admin.
func IsAdminCtx(ctx context.Context) bool {
	return UserRoleFromCtx(ctx).IsAdmin()
}

// IsModeratorCtx reports whether the context user may use moderation tools.
func IsModeratorCtx(ctx context.Context) bool {
	return UserRoleFromCtx(ctx).IsModerator()
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
