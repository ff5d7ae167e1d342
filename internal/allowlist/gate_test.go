package allowlist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeLookup struct {
	docs map[string]bool
	errs map[string]error
}

func (f *fakeLookup) Exists(_ context.Context, key string) (bool, error) {
	if err := f.errs[key]; err != nil {
		return false, err
	}
	return f.docs[key], nil
}

func testMembers() *Members {
	return NewMembers([]Member{{Email: "jane.doe@uni.edu", Name: "Jane"}})
}

func TestGateCheck(t *testing.T) {
	cases := []struct {
		name    string
		email   string
		remote  *fakeLookup
		outcome Outcome
		reason  string
	}{
		{
			name:    "not on static list",
			email:   "stranger@uni.edu",
			remote:  &fakeLookup{docs: map[string]bool{"stranger,uni,edu": true}},
			outcome: Deny,
			reason:  ReasonLocal,
		},
		{
			name:    "empty email",
			email:   "",
			remote:  &fakeLookup{},
			outcome: Deny,
			reason:  ReasonLocal,
		},
		{
			name:    "static only",
			email:   "jane.doe@uni.edu",
			remote:  &fakeLookup{},
			outcome: Deny,
			reason:  ReasonFirestoreMissing,
		},
		{
			name:    "sanitized key",
			email:   "Jane.Doe@uni.edu",
			remote:  &fakeLookup{docs: map[string]bool{"jane,doe@uni,edu": true}},
			outcome: Allow,
		},
		{
			name:    "raw key",
			email:   "jane.doe@uni.edu",
			remote:  &fakeLookup{docs: map[string]bool{"jane.doe@uni.edu": true}},
			outcome: Allow,
		},
		{
			name:  "permission denied defers",
			email: "jane.doe@uni.edu",
			remote: &fakeLookup{errs: map[string]error{
				"jane,doe@uni,edu": status.Error(codes.PermissionDenied, "rules"),
			}},
			outcome: Defer,
		},
		{
			name:  "other gRPC error denies with code",
			email: "jane.doe@uni.edu",
			remote: &fakeLookup{errs: map[string]error{
				"jane.doe@uni.edu": status.Error(codes.Unavailable, "offline"),
			}},
			outcome: Deny,
			reason:  "unavailable",
		},
		{
			name:  "plain error denies generically",
			email: "jane.doe@uni.edu",
			remote: &fakeLookup{errs: map[string]error{
				"jane.doe@uni.edu": errors.New("boom"),
			}},
			outcome: Deny,
			reason:  ReasonFirestoreError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewGate(testMembers(), tc.remote).Check(context.Background(), tc.email)
			assert.Equal(t, tc.outcome, d.Outcome)
			assert.Equal(t, tc.reason, d.Reason)
			assert.Equal(t, tc.outcome != Deny, d.Admitted())
		})
	}
}

func TestGateInRemoteUsesSanitizedKey(t *testing.T) {
	g := NewGate(testMembers(), &fakeLookup{docs: map[string]bool{"jane.doe@uni.edu": true}})

	ok, err := g.InRemote(context.Background(), "jane.doe@uni.edu")
	require.NoError(t, err)
	assert.False(t, ok, "raw key alone does not satisfy the sanitized lookup")

	g = NewGate(testMembers(), &fakeLookup{docs: map[string]bool{"jane,doe@uni,edu": true}})
	ok, err = g.InRemote(context.Background(), "Jane.Doe@uni.edu")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReasonFor(t *testing.T) {
	assert.Equal(t, "deadline-exceeded", ReasonFor(status.Error(codes.DeadlineExceeded, "")))
	assert.Equal(t, ReasonFirestoreError, ReasonFor(errors.New("x")))
}
