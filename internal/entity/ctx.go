package entity

import (
	"context"
)

type CtxKey int

const (
	CtxKeyIdentity CtxKey = iota
)

func CtxWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, CtxKeyIdentity, identity)
}

// IdentityFromCtx returns the caller identity from context or ErrUnauthenticated if it is not set.
func IdentityFromCtx(ctx context.Context) (Identity, error) {
	identity, ok := ctx.Value(CtxKeyIdentity).(Identity)
	if !ok {
		return identity, ErrUnauthenticated
	}

	return identity, nil
}
