package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cse-connect/connect-backend/internal/db"
	"github.com/cse-connect/connect-backend/internal/models"
)

type memStore[T any] struct {
	name    string
	mu      sync.Mutex
	items   map[string]*T
	order   []string
	updates map[string]map[string]interface{}
	nextID  int
}

func newMemStore[T any](name string) *memStore[T] {
	return &memStore[T]{name: name, items: map[string]*T{}, updates: map[string]map[string]interface{}{}}
}

func (m *memStore[T]) Name() string { return m.name }

func (m *memStore[T]) Get(_ context.Context, id string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("%s '%s': %w", m.name, id, db.ErrNotFound)
	}
	return item, nil
}

func (m *memStore[T]) put(id string, item *T) {
	m.items[id] = item
	m.order = append(m.order, id)
	if s, ok := any(item).(interface{ SetID(string) }); ok {
		s.SetID(id)
	}
}

func (m *memStore[T]) Create(_ context.Context, item *T) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := fmt.Sprintf("%s-%d", m.name, m.nextID)
	m.put(id, item)
	return id, nil
}

func (m *memStore[T]) Update(_ context.Context, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return db.ErrNotFound
	}
	m.updates[id] = fields
	return nil
}

func (m *memStore[T]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *memStore[T]) List(context.Context) ([]*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*T{}
	for _, id := range m.order {
		if item, ok := m.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memStore[T]) Watch(ctx context.Context) db.Stream {
	return &onceStream{fetch: func() (interface{}, error) { return m.List(ctx) }}
}

type onceStream struct {
	fetch func() (interface{}, error)
	done  bool
}

func (s *onceStream) Next() (interface{}, error) {
	if s.done {
		return nil, context.Canceled
	}
	s.done = true
	return s.fetch()
}

func (s *onceStream) Stop() {}

type fakeFeedRepo struct {
	posts    *memStore[models.FeedPost]
	comments map[string]*memStore[models.Comment]
}

func newFakeFeedRepo() *fakeFeedRepo {
	return &fakeFeedRepo{posts: newMemStore[models.FeedPost]("feedPosts"), comments: map[string]*memStore[models.Comment]{}}
}

func (r *fakeFeedRepo) Posts() db.Store[models.FeedPost] { return r.posts }

func (r *fakeFeedRepo) Comments(postID string) db.Store[models.Comment] {
	if _, ok := r.comments[postID]; !ok {
		r.comments[postID] = newMemStore[models.Comment]("comments")
	}
	return r.comments[postID]
}

func (r *fakeFeedRepo) MutateReactions(ctx context.Context, postID string, fn func(*models.FeedPost) error) error {
	post, err := r.posts.Get(ctx, postID)
	if err != nil {
		return err
	}
	cp := *post
	cp.ReactionCounts = map[string]int64{}
	for k, v := range post.ReactionCounts {
		cp.ReactionCounts[k] = v
	}
	cp.ReactionsBy = map[string]string{}
	for k, v := range post.ReactionsBy {
		cp.ReactionsBy[k] = v
	}
	if err := fn(&cp); err != nil {
		return err
	}
	post.ReactionCounts, post.ReactionsBy = cp.ReactionCounts, cp.ReactionsBy
	return nil
}

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*models.User
	phones    []string
	phoneErr  error
	ensured   []*models.User
	ensureErr error
	since     time.Time
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) GetByID(_ context.Context, uid string) (*models.User, error) {
	u, ok := r.users[uid]
	if !ok {
		return nil, db.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Ensure(_ context.Context, u *models.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ensureErr != nil {
		return false, r.ensureErr
	}
	r.ensured = append(r.ensured, u)
	_, existed := r.users[u.UID]
	r.users[u.UID] = u
	return !existed, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, uid string, fields map[string]interface{}) error {
	u, ok := r.users[uid]
	if !ok {
		return db.ErrNotFound
	}
	if v, ok := fields["displayName"].(string); ok {
		u.DisplayName = v
	}
	if v, ok := fields["phone"].(string); ok {
		u.Phone = v
	}
	return nil
}

func (r *fakeUserRepo) Touch(context.Context, string) error { return nil }

func (r *fakeUserRepo) SeenSince(_ context.Context, since time.Time) ([]*models.User, error) {
	r.since = since
	var out []*models.User
	for _, u := range r.users {
		if !u.LastSeenAt.Before(since) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) PhoneNumbers(context.Context) ([]string, error) {
	return r.phones, r.phoneErr
}

type smsStatus struct {
	status, err string
}

type fakeAlertRepo struct {
	alerts   *memStore[models.Alert]
	statuses map[string]smsStatus
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{alerts: newMemStore[models.Alert]("alerts"), statuses: map[string]smsStatus{}}
}

func (r *fakeAlertRepo) Alerts() db.Store[models.Alert] { return r.alerts }

func (r *fakeAlertRepo) SetSMSStatus(ctx context.Context, alertID, status, errMsg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.statuses[alertID] = smsStatus{status: status, err: errMsg}
	return nil
}

type fakeZenRepo struct {
	moments *memStore[models.ZenMoment]
	meta    *models.ZenMeta
	seeded  []*models.ZenMoment
}

func newFakeZenRepo() *fakeZenRepo {
	return &fakeZenRepo{moments: newMemStore[models.ZenMoment]("zenMoments")}
}

func (r *fakeZenRepo) Moments() db.Store[models.ZenMoment] { return r.moments }

func (r *fakeZenRepo) AutoQuoteMeta(context.Context) (*models.ZenMeta, error) { return r.meta, nil }

func (r *fakeZenRepo) SeedAutoQuote(_ context.Context, now time.Time, interval time.Duration, m *models.ZenMoment) (bool, error) {
	if r.meta != nil && now.Sub(r.meta.LastGeneratedAt) < interval {
		return false, nil
	}
	m.CreatedAt = now
	r.seeded = append(r.seeded, m)
	r.meta = &models.ZenMeta{LastGeneratedAt: now, LastQuote: m.Text, LastAuthor: m.QuoteAuthor}
	return true, nil
}

type fakeQARepo struct {
	questions *memStore[models.Question]
	answers   *memStore[models.Answer]
}

func (r *fakeQARepo) Questions() db.Store[models.Question] { return r.questions }
func (r *fakeQARepo) Answers(string) db.Store[models.Answer] { return r.answers }

type fakeChatRepo struct {
	channels *memStore[models.ChatChannel]
	messages *memStore[models.Message]
}

func (r *fakeChatRepo) Channels() db.Store[models.ChatChannel] { return r.channels }
func (r *fakeChatRepo) Messages(string) db.Store[models.Message] { return r.messages }
