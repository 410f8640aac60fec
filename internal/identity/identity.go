// Package identity describes the caller a request runs on behalf of.
package identity

import "context"

const DefaultType = "user"

// Identity is the caller snapshot stamped onto created records.
type Identity struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	DisplayName string `json:"displayName"`
}

type ctxKey struct{}

func NewContext(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity attached by the auth middleware, or nil.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(ctxKey{}).(*Identity)
	return id
}

// FromClaims maps verified token claims onto an Identity. It returns nil
// when the claims carry no subject.
func FromClaims(claims map[string]interface{}) *Identity {
	sub := claimString(claims, "sub")
	if sub == "" {
		return nil
	}
	id := &Identity{ID: sub, Type: claimString(claims, "type")}
	if id.Type == "" {
		id.Type = DefaultType
	}
	for _, k := range []string{"name", "preferred_username", "email"} {
		if v := claimString(claims, k); v != "" {
			id.DisplayName = v
			break
		}
	}
	return id
}

func claimString(claims map[string]interface{}, key string) string {
	s, _ := claims[key].(string)
	return s
}

// Provider resolves the current caller. A nil identity means anonymous.
type Provider interface {
	Identity(ctx context.Context) (*Identity, error)
}

// ContextProvider reads the identity stored in the request context.
type ContextProvider struct{}

func (ContextProvider) Identity(ctx context.Context) (*Identity, error) {
	return FromContext(ctx), nil
}

// Static always returns the same identity. Used by the CLI and tests.
type Static struct {
	Who *Identity
}

func (s Static) Identity(context.Context) (*Identity, error) {
	return s.Who, nil
}
