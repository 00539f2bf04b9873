// Package authctx はリクエスト単位の認証済みユーザーを context.Context で受け渡す。
package authctx

import (
	"context"
	"slices"
)

const AnonymousAuthority = "ROLE_ANONYMOUS"

// Identityはリクエスト中だけ有効な呼び出し元
type Identity struct {
	ProviderID  string
	Authorities []string
	Anonymous   bool
}

type ctxKey struct{}

func Anonymous() Identity {
	return Identity{Authorities: []string{AnonymousAuthority}, Anonymous: true}
}

func (i Identity) HasAuthority(a string) bool {
	return slices.Contains(i.Authorities, a)
}

// 匿名でないものだけ認証済み
func (i Identity) Authenticated() bool {
	return !i.Anonymous && i.ProviderID != ""
}

func With(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func From(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// 認証済みのときだけ返す
func Current(ctx context.Context) (Identity, bool) {
	id, ok := From(ctx)
	if !ok || !id.Authenticated() {
		return Identity{}, false
	}
	return id, true
}
