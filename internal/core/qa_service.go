package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/cse-connect/connect-backend/internal/db"
	"github.com/cse-connect/connect-backend/internal/models"
)

type qaService struct {
	repo db.QARepository
}

func NewQAService(repo db.QARepository) QAService {
	return &qaService{repo: repo}
}

func questionAuthor(q *models.Question) string { return q.AuthorUID }
func answerAuthor(a *models.Answer) string     { return a.AuthorUID }

func (s *qaService) ListQuestions(ctx context.Context) ([]*models.Question, error) {
	return s.repo.Questions().List(ctx)
}

func (s *qaService) WatchQuestions(ctx context.Context) db.Stream {
	return s.repo.Questions().Watch(ctx)
}

func (s *qaService) CreateQuestion(ctx context.Context, actor models.Actor, req models.QuestionRequest) (*models.Question, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, invalid("question title is required")
	}
	q := &models.Question{
		Title:      title,
		Body:       strings.TrimSpace(req.Body),
		Tags:       cleanTags(req.Tags),
		AuthorUID:  actor.UID,
		AuthorName: actor.AuthorName(),
	}
	if _, err := s.repo.Questions().Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *qaService) UpdateQuestion(ctx context.Context, actor models.Actor, id string, req models.QuestionRequest) error {
	questions := s.repo.Questions()
	if _, err := loadOwned(ctx, questions, id, actor.UID, questionAuthor); err != nil {
		return err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return invalid("question title is required")
	}
	return questions.Update(ctx, id, map[string]interface{}{
		"title": title,
		"body":  strings.TrimSpace(req.Body),
		"tags":  cleanTags(req.Tags),
	})
}

// DeleteQuestion leaves the answers subcollection in place.
func (s *qaService) DeleteQuestion(ctx context.Context, actor models.Actor, id string) error {
	questions := s.repo.Questions()
	if _, err := loadOwned(ctx, questions, id, actor.UID, questionAuthor); err != nil {
		return err
	}
	return questions.Delete(ctx, id)
}

func (s *qaService) ListAnswers(ctx context.Context, questionID string) ([]*models.Answer, error) {
	return s.repo.Answers(questionID).List(ctx)
}

func (s *qaService) WatchAnswers(ctx context.Context, questionID string) db.Stream {
	return s.repo.Answers(questionID).Watch(ctx)
}

func (s *qaService) AddAnswer(ctx context.Context, actor models.Actor, questionID string, req models.AnswerRequest) (*models.Answer, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, invalid("answer body is required")
	}
	if _, err := s.repo.Questions().Get(ctx, questionID); err != nil {
		return nil, fmt.Errorf("cannot answer: %w", err)
	}
	a := &models.Answer{
		Body:       body,
		AuthorUID:  actor.UID,
		AuthorName: actor.AuthorName(),
	}
	if _, err := s.repo.Answers(questionID).Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *qaService) UpdateAnswer(ctx context.Context, actor models.Actor, questionID, answerID string, req models.AnswerRequest) error {
	answers := s.repo.Answers(questionID)
	if _, err := loadOwned(ctx, answers, answerID, actor.UID, answerAuthor); err != nil {
		return err
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return invalid("answer body is required")
	}
	return answers.Update(ctx, answerID, map[string]interface{}{"body": body})
}

func (s *qaService) DeleteAnswer(ctx context.Context, actor models.Actor, questionID, answerID string) error {
	answers := s.repo.Answers(questionID)
	if _, err := loadOwned(ctx, answers, answerID, actor.UID, answerAuthor); err != nil {
		return err
	}
	return answers.Delete(ctx, answerID)
}
