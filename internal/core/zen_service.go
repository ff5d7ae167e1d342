package core

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/db"
	"github.com/cse-connect/connect-backend/internal/models"
)

const (
	zenBotUID  = "system"
	zenBotName = "Zen Bot"
)

type zenService struct {
	repo     db.ZenRepository
	quotes   QuoteSource
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewZenService creates a ZenService that seeds at most one auto quote per
// interval.
func NewZenService(repo db.ZenRepository, quotes QuoteSource, interval time.Duration, logger *zap.Logger) ZenService {
	return &zenService{repo: repo, quotes: quotes, interval: interval, now: time.Now, logger: logger}
}

func zenAuthor(z *models.ZenMoment) string { return z.AuthorUID }

func (s *zenService) List(ctx context.Context) ([]*models.ZenMoment, error) {
	return s.repo.Moments().List(ctx)
}

func (s *zenService) Watch(ctx context.Context) db.Stream {
	return s.repo.Moments().Watch(ctx)
}

// zenFields validates a request. Text is required except for a photo
// moment that carries an image.
func zenFields(req models.ZenRequest) (map[string]interface{}, error) {
	text := strings.TrimSpace(req.Text)
	if req.Type == models.ZenPhoto {
		if text == "" && req.ImageURL == "" {
			return nil, invalid("a photo moment needs an image or text")
		}
	} else if text == "" {
		return nil, invalid("moment text is required")
	}
	if err := checkImage(req.ImageURL); err != nil {
		return nil, err
	}
	quoteAuthor := ""
	if req.Type == models.ZenQuote {
		quoteAuthor = strings.TrimSpace(req.QuoteAuthor)
	}
	return map[string]interface{}{
		"text":        text,
		"type":        req.Type,
		"imageUrl":    req.ImageURL,
		"quoteAuthor": quoteAuthor,
		"sourceName":  strings.TrimSpace(req.SourceName),
		"sourceUrl":   strings.TrimSpace(req.SourceURL),
	}, nil
}

func (s *zenService) Create(ctx context.Context, actor models.Actor, req models.ZenRequest) (*models.ZenMoment, error) {
	f, err := zenFields(req)
	if err != nil {
		return nil, err
	}
	z := &models.ZenMoment{
		Text:        f["text"].(string),
		Type:        req.Type,
		ImageURL:    req.ImageURL,
		QuoteAuthor: f["quoteAuthor"].(string),
		SourceName:  f["sourceName"].(string),
		SourceURL:   f["sourceUrl"].(string),
		AuthorUID:   actor.UID,
		AuthorName:  actor.AuthorName(),
	}
	if _, err := s.repo.Moments().Create(ctx, z); err != nil {
		return nil, err
	}
	return z, nil
}

func (s *zenService) Update(ctx context.Context, actor models.Actor, id string, req models.ZenRequest) error {
	moments := s.repo.Moments()
	if _, err := loadOwned(ctx, moments, id, actor.UID, zenAuthor); err != nil {
		return err
	}
	f, err := zenFields(req)
	if err != nil {
		return err
	}
	return moments.Update(ctx, id, f)
}

func (s *zenService) Delete(ctx context.Context, actor models.Actor, id string) error {
	moments := s.repo.Moments()
	if _, err := loadOwned(ctx, moments, id, actor.UID, zenAuthor); err != nil {
		return err
	}
	return moments.Delete(ctx, id)
}

// MaybeSeedQuote writes an auto quote when the last one is older than the
// interval. The interval is checked before fetching and again inside the
// write transaction, so concurrent callers create at most one moment.
func (s *zenService) MaybeSeedQuote(ctx context.Context) (models.SeedResult, error) {
	now := s.now()

	meta, err := s.repo.AutoQuoteMeta(ctx)
	if err != nil {
		return models.SeedResult{}, err
	}
	if meta != nil && !meta.LastGeneratedAt.IsZero() && now.Sub(meta.LastGeneratedAt) < s.interval {
		return models.SeedResult{Skipped: true}, nil
	}

	quote, err := s.quotes.Quote(ctx)
	if err != nil {
		s.logger.Warn("quote API failed, using fallback quote", zap.Error(err))
		quote = FallbackQuote()
	}

	moment := &models.ZenMoment{
		Text:        quote.Text,
		Type:        models.ZenQuote,
		QuoteAuthor: quote.Author,
		SourceName:  quote.SourceName,
		SourceURL:   quote.SourceURL,
		AuthorUID:   zenBotUID,
		AuthorName:  zenBotName,
		IsAuto:      true,
	}
	created, err := s.repo.SeedAutoQuote(ctx, now, s.interval, moment)
	if err != nil {
		return models.SeedResult{}, err
	}
	if !created {
		return models.SeedResult{Skipped: true}, nil
	}
	return models.SeedResult{Created: true}, nil
}
