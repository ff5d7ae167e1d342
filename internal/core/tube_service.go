package core

import (
	"context"

	"github.com/cse-connect/connect-backend/internal/db"
	"github.com/cse-connect/connect-backend/internal/models"
)

type tubeService struct {
	tubes db.Store[models.Tube]
}

func NewTubeService(tubes db.Store[models.Tube]) TubeService {
	return &tubeService{tubes: tubes}
}

func tubeAuthor(t *models.Tube) string { return t.AuthorUID }

// decorateTubes fills the derived video fields of every tube.
func decorateTubes(tubes []*models.Tube) []*models.Tube {
	for _, t := range tubes {
		t.VideoID = ExtractYouTubeID(t.URL)
		t.ThumbnailURL = YouTubeThumbnail(t.VideoID)
		t.EmbedURL = YouTubeEmbedURL(t.VideoID)
	}
	return tubes
}

func (s *tubeService) List(ctx context.Context) ([]*models.Tube, error) {
	tubes, err := s.tubes.List(ctx)
	if err != nil {
		return nil, err
	}
	return decorateTubes(tubes), nil
}

func (s *tubeService) Watch(ctx context.Context) db.Stream {
	return mapStream(s.tubes.Watch(ctx), func(items interface{}) interface{} {
		if tubes, ok := items.([]*models.Tube); ok {
			return decorateTubes(tubes)
		}
		return items
	})
}

func tubeFields(req models.LinkRequest) (map[string]interface{}, error) {
	fields, err := linkFields(req)
	if err != nil {
		return nil, err
	}
	if ExtractYouTubeID(fields["url"].(string)) == "" {
		return nil, invalid("enter a valid YouTube URL")
	}
	return fields, nil
}

func (s *tubeService) Create(ctx context.Context, actor models.Actor, req models.LinkRequest) (*models.Tube, error) {
	fields, err := tubeFields(req)
	if err != nil {
		return nil, err
	}
	t := &models.Tube{
		Title:       fields["title"].(string),
		URL:         fields["url"].(string),
		Description: fields["description"].(string),
		Tags:        fields["tags"].([]string),
		AuthorUID:   actor.UID,
		AuthorName:  actor.AuthorName(),
	}
	if _, err := s.tubes.Create(ctx, t); err != nil {
		return nil, err
	}
	return decorateTubes([]*models.Tube{t})[0], nil
}

func (s *tubeService) Update(ctx context.Context, actor models.Actor, id string, req models.LinkRequest) error {
	if _, err := loadOwned(ctx, s.tubes, id, actor.UID, tubeAuthor); err != nil {
		return err
	}
	fields, err := tubeFields(req)
	if err != nil {
		return err
	}
	return s.tubes.Update(ctx, id, fields)
}

func (s *tubeService) Delete(ctx context.Context, actor models.Actor, id string) error {
	if _, err := loadOwned(ctx, s.tubes, id, actor.UID, tubeAuthor); err != nil {
		return err
	}
	return s.tubes.Delete(ctx, id)
}
