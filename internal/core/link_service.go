package core

import (
	"context"
	"strings"

	"github.com/cse-connect/connect-backend/internal/db"
	"github.com/cse-connect/connect-backend/internal/models"
)

type linkService struct {
	links db.Store[models.Link]
}

func NewLinkService(links db.Store[models.Link]) LinkService {
	return &linkService{links: links}
}

func linkAuthor(l *models.Link) string { return l.AuthorUID }

func (s *linkService) List(ctx context.Context) ([]*models.Link, error) {
	return s.links.List(ctx)
}

func (s *linkService) Watch(ctx context.Context) db.Stream {
	return s.links.Watch(ctx)
}

func (s *linkService) Create(ctx context.Context, actor models.Actor, req models.LinkRequest) (*models.Link, error) {
	fields, err := linkFields(req)
	if err != nil {
		return nil, err
	}
	l := &models.Link{
		Title:       fields["title"].(string),
		URL:         fields["url"].(string),
		Description: fields["description"].(string),
		Tags:        fields["tags"].([]string),
		AuthorUID:   actor.UID,
		AuthorName:  actor.AuthorName(),
	}
	if _, err := s.links.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *linkService) Update(ctx context.Context, actor models.Actor, id string, req models.LinkRequest) error {
	if _, err := loadOwned(ctx, s.links, id, actor.UID, linkAuthor); err != nil {
		return err
	}
	fields, err := linkFields(req)
	if err != nil {
		return err
	}
	return s.links.Update(ctx, id, fields)
}

func (s *linkService) Delete(ctx context.Context, actor models.Actor, id string) error {
	if _, err := loadOwned(ctx, s.links, id, actor.UID, linkAuthor); err != nil {
		return err
	}
	return s.links.Delete(ctx, id)
}

// linkFields validates a link or tube request into its stored fields.
func linkFields(req models.LinkRequest) (map[string]interface{}, error) {
	title := strings.TrimSpace(req.Title)
	url := strings.TrimSpace(req.URL)
	if title == "" || url == "" {
		return nil, invalid("title and url are required")
	}
	return map[string]interface{}{
		"title":       title,
		"url":         url,
		"description": strings.TrimSpace(req.Description),
		"tags":        cleanTags(req.Tags),
	}, nil
}
