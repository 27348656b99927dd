package cont

import (
	"context"

	"github.com/Ro706/Project-MARS/entity"
)

type userKey struct{}

// PutUser stores the authenticated user in the request context.
func PutUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser returns the authenticated user, or nil outside an
// authenticated request.
func GetUser(ctx context.Context) *entity.User {
	user, ok := ctx.Value(userKey{}).(*entity.User)
	if !ok {
		return nil
	}
	return user
}
