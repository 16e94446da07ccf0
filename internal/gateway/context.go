package gateway

import (
	"context"

	"github.com/campusdata/webreg-collector/internal/termreg"
)

type ctxKey int

const (
	ctxKeyTerm ctxKey = iota
	ctxKeyKeyPrefix
)

func withTerm(ctx context.Context, term *termreg.Info) context.Context {
	return context.WithValue(ctx, ctxKeyTerm, term)
}

func termFromContext(ctx context.Context) *termreg.Info {
	t, _ := ctx.Value(ctxKeyTerm).(*termreg.Info)
	return t
}

func withKeyPrefix(ctx context.Context, prefix string) context.Context {
	return context.WithValue(ctx, ctxKeyKeyPrefix, prefix)
}
