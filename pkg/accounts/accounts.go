package accounts

import "context"

// Directory lists every hosted account on the server. A listing failure is
// fatal to a scrape: without it no account can be known.
type Directory interface {
	ListUsers(ctx context.Context) ([]string, error)
}

// Identity is the per-account attributes used to build labels.
type Identity struct {
	IP string
}

// IdentityResolver resolves an account's identity attributes. Resolution is
// best-effort: a failed lookup yields the "unknown" sentinel, never an
// error.
type IdentityResolver interface {
	Resolve(ctx context.Context, user string) Identity
}
