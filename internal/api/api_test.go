package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/allowlist"
	"github.com/cse-connect/connect-backend/internal/config"
	"github.com/cse-connect/connect-backend/internal/core"
	"github.com/cse-connect/connect-backend/internal/db"
	"github.com/cse-connect/connect-backend/internal/middleware"
	"github.com/cse-connect/connect-backend/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier map[string]*auth.Token

func (f fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if tok, ok := f[idToken]; ok {
		return tok, nil
	}
	return nil, errors.New("bad token")
}

type memberGate struct{}

func (memberGate) Check(_ context.Context, email string) allowlist.Decision {
	if email == "ada@example.com" {
		return allowlist.Decision{Outcome: allowlist.Allow, Email: email}
	}
	return allowlist.Decision{Outcome: allowlist.Deny, Email: email, Reason: allowlist.ReasonLocal}
}

type fakeAccess struct {
	got *models.Actor
}

func (f *fakeAccess) Session(_ context.Context, actor *models.Actor) (*models.Session, error) {
	f.got = actor
	if actor == nil {
		return &models.Session{Status: models.AccessSignedOut}, nil
	}
	return &models.Session{Status: models.AccessAllowed, User: &models.User{ID: actor.UID}}, nil
}

// Fakes embed the service interface and override what the tests call.
type fakeFeed struct {
	core.FeedService
	posts     []*models.FeedPost
	toggleErr error
	updateErr error
	reactions []string
}

func (f *fakeFeed) ListPosts(context.Context) ([]*models.FeedPost, error) { return f.posts, nil }

func (f *fakeFeed) CreatePost(_ context.Context, actor models.Actor, req models.CreatePostRequest) (*models.FeedPost, error) {
	return &models.FeedPost{ID: "p1", AuthorUID: actor.UID, Text: req.Text}, nil
}

func (f *fakeFeed) UpdatePost(context.Context, models.Actor, string, models.UpdatePostRequest) error {
	return f.updateErr
}

func (f *fakeFeed) ToggleReaction(_ context.Context, _ models.Actor, postID, reaction string) error {
	f.reactions = append(f.reactions, postID+":"+reaction)
	return f.toggleErr
}

func (f *fakeFeed) WatchPosts(ctx context.Context) db.Stream {
	return &blockingStream{ctx: ctx, first: f.posts}
}

// blockingStream yields one snapshot then waits for cancellation.
type blockingStream struct {
	ctx   context.Context
	first interface{}
	sent  bool
}

func (s *blockingStream) Next() (interface{}, error) {
	if !s.sent {
		s.sent = true
		return s.first, nil
	}
	<-s.ctx.Done()
	return nil, s.ctx.Err()
}

func (s *blockingStream) Stop() {}

type fakeAlerts struct {
	core.AlertService
	result *models.BroadcastResult
	err    error
	caller *models.Actor
	id     string
}

func (f *fakeAlerts) SendBroadcastSMS(_ context.Context, caller *models.Actor, alertID string) (*models.BroadcastResult, error) {
	f.caller, f.id = caller, alertID
	return f.result, f.err
}

type fakeProjects struct {
	core.ProjectService
	items []*models.Project
	err   error
}

func (f *fakeProjects) List(context.Context) ([]*models.Project, error) { return f.items, f.err }

func (f *fakeProjects) Delete(context.Context, models.Actor, string) error { return f.err }

type fakeZen struct {
	core.ZenService
	result models.SeedResult
}

func (f *fakeZen) MaybeSeedQuote(context.Context) (models.SeedResult, error) { return f.result, nil }

func newTestRouter(svc Services) *gin.Engine {
	verifier := fakeVerifier{
		"good":     {UID: "u1", Claims: map[string]interface{}{"email": "ada@example.com", "name": "Ada"}},
		"stranger": {UID: "u2", Claims: map[string]interface{}{"email": "eve@example.com"}},
	}
	cfg := &config.Config{PresenceWindow: 5 * time.Minute, PresencePollInterval: time.Minute, MetricsEnabled: true}
	r := gin.New()
	SetupRoutes(r, cfg, zap.NewNop(), middleware.NewAuthMiddleware(verifier, zap.NewNop()), memberGate{}, svc)
	return r
}

func request(r http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(Services{})
	w := request(r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestMemberRoutesRequireAllowedToken(t *testing.T) {
	r := newTestRouter(Services{Feed: &fakeFeed{}})

	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodGet, "/api/v1/feed", "", "").Code)
	assert.Equal(t, http.StatusForbidden, request(r, http.MethodGet, "/api/v1/feed", "stranger", "").Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/v1/feed", "good", "").Code)
}

func TestSession(t *testing.T) {
	access := &fakeAccess{}
	r := newTestRouter(Services{Access: access})

	w := request(r, http.MethodPost, "/api/v1/session", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"signedOut"}`, w.Body.String())
	assert.Nil(t, access.got)

	w = request(r, http.MethodPost, "/api/v1/session", "stranger", "")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, access.got)
	assert.Equal(t, "eve@example.com", access.got.Email)
}

func TestFeedHandlers(t *testing.T) {
	feed := &fakeFeed{}
	r := newTestRouter(Services{Feed: feed})

	w := request(r, http.MethodPost, "/api/v1/feed", "good", `{"text":"hello"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"authorUid":"u1"`)

	w = request(r, http.MethodPost, "/api/v1/feed/p1/reactions", "good", `{"reaction":"wow"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, feed.reactions)

	w = request(r, http.MethodPost, "/api/v1/feed/p1/reactions", "good", `{"reaction":"love"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"p1:love"}, feed.reactions)

	feed.toggleErr = fmt.Errorf("post: %w", core.ErrNotFound)
	w = request(r, http.MethodPost, "/api/v1/feed/gone/reactions", "good", `{"reaction":"like"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	feed.updateErr = fmt.Errorf("%w: feedPosts 'p1'", core.ErrForbidden)
	w = request(r, http.MethodPatch, "/api/v1/feed/p1", "good", `{"text":"edited"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestResourceHandlers(t *testing.T) {
	projects := &fakeProjects{items: []*models.Project{{ID: "x", Title: "Board"}}}
	r := newTestRouter(Services{Projects: projects})

	w := request(r, http.MethodGet, "/api/v1/projects", "good", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Board"`)

	projects.err = errors.New("firestore exploded")
	w = request(r, http.MethodDelete, "/api/v1/projects/x", "good", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "exploded")
}

func TestZenAutoQuote(t *testing.T) {
	r := newTestRouter(Services{Zen: &fakeZen{result: models.SeedResult{Skipped: true}}})
	w := request(r, http.MethodPost, "/api/v1/zen/auto-quote", "good", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"skipped":true}`, w.Body.String())
}

func TestSendBroadcastSMSCallable(t *testing.T) {
	three, zero := 3, 0

	cases := []struct {
		name     string
		token    string
		body     string
		result   *models.BroadcastResult
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "sent",
			token:    "good",
			body:     `{"data":{"alertId":"a1"}}`,
			result:   &models.BroadcastResult{Configured: true, Sent: &three, Failed: &zero},
			wantCode: http.StatusOK,
			wantBody: `{"result":{"configured":true,"sent":3,"failed":0}}`,
		},
		{
			name:     "not configured",
			token:    "good",
			body:     `{"data":{"alertId":"a1"}}`,
			result:   &models.BroadcastResult{Configured: false},
			wantCode: http.StatusOK,
			wantBody: `{"result":{"configured":false}}`,
		},
		{
			name:     "unauthenticated",
			body:     `{"data":{"alertId":"a1"}}`,
			err:      core.ErrUnauthenticated,
			wantCode: http.StatusUnauthorized,
			wantBody: `{"error":{"status":"UNAUTHENTICATED","message":"sign-in required"}}`,
		},
		{
			name:     "rate limited",
			token:    "good",
			body:     `{"data":{"alertId":"a1"}}`,
			err:      fmt.Errorf("%w: retry in 30s", core.ErrRateLimited),
			wantCode: http.StatusTooManyRequests,
			wantBody: `{"error":{"status":"RESOURCE_EXHAUSTED","message":"too many requests: retry in 30s"}}`,
		},
		{
			name:     "internal",
			token:    "good",
			body:     `{"data":{"alertId":"a1"}}`,
			err:      errors.New("deadline"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":{"status":"INTERNAL","message":"INTERNAL"}}`,
		},
		{
			name:     "malformed body",
			token:    "good",
			body:     `not json`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":{"status":"INVALID_ARGUMENT","message":"Bad Request"}}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			alerts := &fakeAlerts{result: tc.result, err: tc.err}
			r := newTestRouter(Services{Alerts: alerts})

			w := request(r, http.MethodPost, "/functions/sendBroadcastSms", tc.token, tc.body)
			assert.Equal(t, tc.wantCode, w.Code)
			assert.JSONEq(t, tc.wantBody, w.Body.String())
		})
	}
}

func TestSendBroadcastSMSCallablePassesCaller(t *testing.T) {
	alerts := &fakeAlerts{result: &models.BroadcastResult{}}
	r := newTestRouter(Services{Alerts: alerts})

	request(r, http.MethodPost, "/functions/sendBroadcastSms", "", `{"data":{"alertId":"a9"}}`)
	assert.Nil(t, alerts.caller)

	request(r, http.MethodPost, "/functions/sendBroadcastSms", "good", `{"data":{"alertId":"a9"}}`)
	require.NotNil(t, alerts.caller)
	assert.Equal(t, "u1", alerts.caller.UID)
	assert.Equal(t, "a9", alerts.id)
}

func TestCallableStatus(t *testing.T) {
	cases := []struct {
		err    error
		code   int
		status string
	}{
		{core.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{core.ErrPermissionDenied, http.StatusForbidden, "PERMISSION_DENIED"},
		{fmt.Errorf("%w: alertId is required", core.ErrInvalidArgument), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{fmt.Errorf("alert not found: %w", core.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{core.ErrRateLimited, http.StatusTooManyRequests, "RESOURCE_EXHAUSTED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		code, status := callableStatus(tc.err)
		assert.Equal(t, tc.code, code, tc.err.Error())
		assert.Equal(t, tc.status, status, tc.err.Error())
	}
}

func TestLiveFeed(t *testing.T) {
	feed := &fakeFeed{posts: []*models.FeedPost{{ID: "p1", Text: "hi"}}}
	srv := httptest.NewServer(newTestRouter(Services{Feed: feed}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/live/feed?token=good"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var frame struct {
		Type  string             `json:"type"`
		Topic string             `json:"topic"`
		Items []*models.FeedPost `json:"items"`
	}
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "snapshot", frame.Type)
	assert.Equal(t, "feedPosts", frame.Topic)
	require.Len(t, frame.Items, 1)
	assert.Equal(t, "p1", frame.Items[0].ID)
}

func TestLiveRejectsStranger(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(Services{Feed: &fakeFeed{}}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/live/feed?token=stranger"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
