package allowlist

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Outcome of an access check.
type Outcome int

const (
	// Deny rejects the caller.
	Deny Outcome = iota
	// Allow admits the caller.
	Allow
	// Defer admits the caller because the remote list could not be read
	// for lack of permission; the store's own rules remain authoritative.
	Defer
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Defer:
		return "defer"
	default:
		return "deny"
	}
}

// Deny reasons.
const (
	ReasonLocal            = "local"
	ReasonFirestoreMissing = "firestore-missing"
	ReasonFirestoreError   = "firestore-error"
)

// Decision is the result of Gate.Check.
type Decision struct {
	Outcome Outcome
	Email   string
	Reason  string // set for Deny
}

// Admitted reports whether the caller may proceed.
func (d Decision) Admitted() bool {
	return d.Outcome == Allow || d.Outcome == Defer
}

// Lookup answers whether an allowlist key document exists.
type Lookup interface {
	Exists(ctx context.Context, key string) (bool, error)
}

// Gate combines the static member list with the remote allowlist.
type Gate struct {
	members *Members
	remote  Lookup
}

func NewGate(members *Members, remote Lookup) *Gate {
	return &Gate{members: members, remote: remote}
}

// Members exposes the static list.
func (g *Gate) Members() *Members {
	return g.members
}

// Check runs the static check, then looks up both remote keys concurrently.
func (g *Gate) Check(ctx context.Context, email string) Decision {
	email = NormalizeEmail(email)
	if email == "" || !g.members.Contains(email) {
		return Decision{Outcome: Deny, Email: email, Reason: ReasonLocal}
	}

	keys := Keys(email)
	found := make([]bool, len(keys))
	var grp errgroup.Group
	for i, key := range keys {
		grp.Go(func() error {
			ok, err := g.remote.Exists(ctx, key.ID)
			found[i] = ok
			return err
		})
	}

	if err := grp.Wait(); err != nil {
		if status.Code(err) == codes.PermissionDenied {
			return Decision{Outcome: Defer, Email: email}
		}
		return Decision{Outcome: Deny, Email: email, Reason: ReasonFor(err)}
	}

	for _, ok := range found {
		if ok {
			return Decision{Outcome: Allow, Email: email}
		}
	}
	return Decision{Outcome: Deny, Email: email, Reason: ReasonFirestoreMissing}
}

// InRemote reports whether the sanitized key of email exists remotely.
// Read errors are returned to the caller.
func (g *Gate) InRemote(ctx context.Context, email string) (bool, error) {
	if NormalizeEmail(email) == "" {
		return false, nil
	}
	return g.remote.Exists(ctx, SanitizeEmail(email))
}

// ReasonFor names a read failure the way client SDKs spell error codes,
// e.g. "unavailable" or "deadline-exceeded".
func ReasonFor(err error) string {
	st, ok := status.FromError(err)
	if !ok || st.Code() == codes.Unknown {
		return ReasonFirestoreError
	}
	return kebab(st.Code().String())
}

func kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
