package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/cse-connect/connect-backend/internal/db"
	"github.com/cse-connect/connect-backend/internal/models"
)

type chatService struct {
	repo db.ChatRepository
}

func NewChatService(repo db.ChatRepository) ChatService {
	return &chatService{repo: repo}
}

func (s *chatService) ListChannels(ctx context.Context) ([]*models.ChatChannel, error) {
	return s.repo.Channels().List(ctx)
}

func (s *chatService) WatchChannels(ctx context.Context) db.Stream {
	return s.repo.Channels().Watch(ctx)
}

func (s *chatService) CreateChannel(ctx context.Context, req models.ChannelRequest) (*models.ChatChannel, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("channel name is required")
	}
	ch := &models.ChatChannel{Name: name}
	if _, err := s.repo.Channels().Create(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

func (s *chatService) ListMessages(ctx context.Context, channelID string) ([]*models.Message, error) {
	return s.repo.Messages(channelID).List(ctx)
}

func (s *chatService) WatchMessages(ctx context.Context, channelID string) db.Stream {
	return s.repo.Messages(channelID).Watch(ctx)
}

// SendMessage appends to the channel; messages are never edited.
func (s *chatService) SendMessage(ctx context.Context, actor models.Actor, channelID string, req models.MessageRequest) (*models.Message, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, invalid("message text is required")
	}
	if _, err := s.repo.Channels().Get(ctx, channelID); err != nil {
		return nil, fmt.Errorf("cannot send message: %w", err)
	}
	m := &models.Message{
		Text:        text,
		AuthorUID:   actor.UID,
		AuthorName:  actor.AuthorName(),
		AuthorPhoto: actor.PhotoURL,
	}
	if _, err := s.repo.Messages(channelID).Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
