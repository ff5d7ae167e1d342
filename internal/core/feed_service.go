package core

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/db"
	"github.com/cse-connect/connect-backend/internal/metrics"
	"github.com/cse-connect/connect-backend/internal/models"
)

// ApplyReaction toggles uid's reaction on the given maps in place. Reacting
// again with the current reaction removes it; reacting with another one
// moves it. Counters never drop below zero.
func ApplyReaction(counts map[string]int64, by map[string]string, uid, reaction string) {
	current, had := by[uid]
	if had {
		if counts[current] > 0 {
			counts[current]--
		} else {
			counts[current] = 0
		}
		delete(by, uid)
	}
	if had && current == reaction {
		return
	}
	counts[reaction]++
	by[uid] = reaction
}

// seedCounts returns a copy of counts with every known reaction present.
func seedCounts(counts map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(models.Reactions))
	for _, r := range models.Reactions {
		out[r] = 0
	}
	for k, v := range counts {
		out[k] = v
	}
	return out
}

type feedService struct {
	repo   db.FeedRepository
	logger *zap.Logger
}

func NewFeedService(repo db.FeedRepository, logger *zap.Logger) FeedService {
	return &feedService{repo: repo, logger: logger}
}

func (s *feedService) ListPosts(ctx context.Context) ([]*models.FeedPost, error) {
	return s.repo.Posts().List(ctx)
}

func (s *feedService) WatchPosts(ctx context.Context) db.Stream {
	return s.repo.Posts().Watch(ctx)
}

func (s *feedService) CreatePost(ctx context.Context, actor models.Actor, req models.CreatePostRequest) (*models.FeedPost, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, invalid("post text is required")
	}
	if err := checkImage(req.ImageURL); err != nil {
		return nil, err
	}

	post := &models.FeedPost{
		AuthorUID:      actor.UID,
		AuthorName:     actor.AuthorName(),
		AuthorPhoto:    actor.PhotoURL,
		Text:           text,
		ImageURL:       req.ImageURL,
		ReactionCounts: seedCounts(nil),
		ReactionsBy:    map[string]string{},
	}
	if _, err := s.repo.Posts().Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *feedService) UpdatePost(ctx context.Context, actor models.Actor, postID string, req models.UpdatePostRequest) error {
	posts := s.repo.Posts()
	if _, err := loadOwned(ctx, posts, postID, actor.UID, func(p *models.FeedPost) string { return p.AuthorUID }); err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if req.Text != nil {
		text := strings.TrimSpace(*req.Text)
		if text == "" {
			return invalid("post text is required")
		}
		fields["text"] = text
	}
	if req.ImageURL != nil {
		if err := checkImage(*req.ImageURL); err != nil {
			return err
		}
		fields["imageUrl"] = *req.ImageURL
	}
	if len(fields) == 0 {
		return invalid("nothing to update")
	}
	return posts.Update(ctx, postID, fields)
}

// DeletePost removes the post only; its comments stay behind.
func (s *feedService) DeletePost(ctx context.Context, actor models.Actor, postID string) error {
	posts := s.repo.Posts()
	if _, err := loadOwned(ctx, posts, postID, actor.UID, func(p *models.FeedPost) string { return p.AuthorUID }); err != nil {
		return err
	}
	return posts.Delete(ctx, postID)
}

// ToggleReaction applies ApplyReaction to the stored post in one transaction.
func (s *feedService) ToggleReaction(ctx context.Context, actor models.Actor, postID, reaction string) error {
	if !models.IsValidReaction(reaction) {
		return invalid("unknown reaction %q", reaction)
	}
	err := s.repo.MutateReactions(ctx, postID, func(post *models.FeedPost) error {
		post.ReactionCounts = seedCounts(post.ReactionCounts)
		if post.ReactionsBy == nil {
			post.ReactionsBy = map[string]string{}
		}
		ApplyReaction(post.ReactionCounts, post.ReactionsBy, actor.UID, reaction)
		return nil
	})
	if err != nil {
		return err
	}
	metrics.ReactionToggled()
	return nil
}

func (s *feedService) ListComments(ctx context.Context, postID string) ([]*models.Comment, error) {
	return s.repo.Comments(postID).List(ctx)
}

func (s *feedService) WatchComments(ctx context.Context, postID string) db.Stream {
	return s.repo.Comments(postID).Watch(ctx)
}

func (s *feedService) AddComment(ctx context.Context, actor models.Actor, postID string, req models.CommentRequest) (*models.Comment, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, invalid("comment text is required")
	}
	if _, err := s.repo.Posts().Get(ctx, postID); err != nil {
		return nil, fmt.Errorf("cannot comment: %w", err)
	}

	c := &models.Comment{
		AuthorUID:  actor.UID,
		AuthorName: actor.AuthorName(),
		Text:       text,
	}
	if _, err := s.repo.Comments(postID).Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *feedService) DeleteComment(ctx context.Context, actor models.Actor, postID, commentID string) error {
	comments := s.repo.Comments(postID)
	if _, err := loadOwned(ctx, comments, commentID, actor.UID, func(c *models.Comment) string { return c.AuthorUID }); err != nil {
		return err
	}
	return comments.Delete(ctx, commentID)
}
