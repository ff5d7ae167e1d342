package core

import (
	"context"
	"strings"

	"github.com/cse-connect/connect-backend/internal/db"
	"github.com/cse-connect/connect-backend/internal/models"
)

type projectService struct {
	projects db.Store[models.Project]
}

func NewProjectService(projects db.Store[models.Project]) ProjectService {
	return &projectService{projects: projects}
}

func projectAuthor(p *models.Project) string { return p.AuthorUID }

func (s *projectService) List(ctx context.Context) ([]*models.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Watch(ctx context.Context) db.Stream {
	return s.projects.Watch(ctx)
}

func (s *projectService) Create(ctx context.Context, actor models.Actor, req models.ProjectRequest) (*models.Project, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, invalid("project title is required")
	}
	p := &models.Project{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Status:      req.Status,
		Links:       models.CompactLinks(req.Links),
		AuthorUID:   actor.UID,
		AuthorName:  actor.AuthorName(),
	}
	if _, err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) Update(ctx context.Context, actor models.Actor, id string, req models.ProjectRequest) error {
	if _, err := loadOwned(ctx, s.projects, id, actor.UID, projectAuthor); err != nil {
		return err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return invalid("project title is required")
	}
	return s.projects.Update(ctx, id, map[string]interface{}{
		"title":       title,
		"description": strings.TrimSpace(req.Description),
		"status":      req.Status,
		"links":       models.CompactLinks(req.Links),
	})
}

func (s *projectService) Delete(ctx context.Context, actor models.Actor, id string) error {
	if _, err := loadOwned(ctx, s.projects, id, actor.UID, projectAuthor); err != nil {
		return err
	}
	return s.projects.Delete(ctx, id)
}
