package core

import (
	"context"
	"time"

	"github.com/cse-connect/connect-backend/internal/db"
	"github.com/cse-connect/connect-backend/internal/models"
)

// UserService manages member profiles and presence.
type UserService interface {
	EnsureUser(ctx context.Context, actor models.Actor) (*models.User, error)
	GetProfile(ctx context.Context, uid string) (*models.User, error)
	UpdateProfile(ctx context.Context, uid string, req models.UpdateProfileRequest) (*models.User, error)
	Heartbeat(ctx context.Context, uid string) error
	OnlineUsers(ctx context.Context, window time.Duration) ([]*models.User, error)
	WatchOnline(ctx context.Context, window, every time.Duration) db.Stream
}

// FeedService manages posts, comments and reactions.
type FeedService interface {
	ListPosts(ctx context.Context) ([]*models.FeedPost, error)
	WatchPosts(ctx context.Context) db.Stream
	CreatePost(ctx context.Context, actor models.Actor, req models.CreatePostRequest) (*models.FeedPost, error)
	UpdatePost(ctx context.Context, actor models.Actor, postID string, req models.UpdatePostRequest) error
	DeletePost(ctx context.Context, actor models.Actor, postID string) error
	ToggleReaction(ctx context.Context, actor models.Actor, postID, reaction string) error

	ListComments(ctx context.Context, postID string) ([]*models.Comment, error)
	WatchComments(ctx context.Context, postID string) db.Stream
	AddComment(ctx context.Context, actor models.Actor, postID string, req models.CommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, actor models.Actor, postID, commentID string) error
}

// ProjectService manages the project board.
type ProjectService interface {
	List(ctx context.Context) ([]*models.Project, error)
	Watch(ctx context.Context) db.Stream
	Create(ctx context.Context, actor models.Actor, req models.ProjectRequest) (*models.Project, error)
	Update(ctx context.Context, actor models.Actor, id string, req models.ProjectRequest) error
	Delete(ctx context.Context, actor models.Actor, id string) error
}

// QAService manages questions and answers.
type QAService interface {
	ListQuestions(ctx context.Context) ([]*models.Question, error)
	WatchQuestions(ctx context.Context) db.Stream
	CreateQuestion(ctx context.Context, actor models.Actor, req models.QuestionRequest) (*models.Question, error)
	UpdateQuestion(ctx context.Context, actor models.Actor, id string, req models.QuestionRequest) error
	DeleteQuestion(ctx context.Context, actor models.Actor, id string) error

	ListAnswers(ctx context.Context, questionID string) ([]*models.Answer, error)
	WatchAnswers(ctx context.Context, questionID string) db.Stream
	AddAnswer(ctx context.Context, actor models.Actor, questionID string, req models.AnswerRequest) (*models.Answer, error)
	UpdateAnswer(ctx context.Context, actor models.Actor, questionID, answerID string, req models.AnswerRequest) error
	DeleteAnswer(ctx context.Context, actor models.Actor, questionID, answerID string) error
}

// LinkService manages shared links.
type LinkService interface {
	List(ctx context.Context) ([]*models.Link, error)
	Watch(ctx context.Context) db.Stream
	Create(ctx context.Context, actor models.Actor, req models.LinkRequest) (*models.Link, error)
	Update(ctx context.Context, actor models.Actor, id string, req models.LinkRequest) error
	Delete(ctx context.Context, actor models.Actor, id string) error
}

// TubeService manages shared videos.
type TubeService interface {
	List(ctx context.Context) ([]*models.Tube, error)
	Watch(ctx context.Context) db.Stream
	Create(ctx context.Context, actor models.Actor, req models.LinkRequest) (*models.Tube, error)
	Update(ctx context.Context, actor models.Actor, id string, req models.LinkRequest) error
	Delete(ctx context.Context, actor models.Actor, id string) error
}

// ChatService manages channels and messages.
type ChatService interface {
	ListChannels(ctx context.Context) ([]*models.ChatChannel, error)
	WatchChannels(ctx context.Context) db.Stream
	CreateChannel(ctx context.Context, req models.ChannelRequest) (*models.ChatChannel, error)
	ListMessages(ctx context.Context, channelID string) ([]*models.Message, error)
	WatchMessages(ctx context.Context, channelID string) db.Stream
	SendMessage(ctx context.Context, actor models.Actor, channelID string, req models.MessageRequest) (*models.Message, error)
}

// AlertService manages alerts and their SMS broadcast.
type AlertService interface {
	List(ctx context.Context) ([]*models.Alert, error)
	Watch(ctx context.Context) db.Stream
	Create(ctx context.Context, actor models.Actor, req models.AlertRequest) (*models.Alert, error)
	SendBroadcastSMS(ctx context.Context, caller *models.Actor, alertID string) (*models.BroadcastResult, error)
}

// ZenService manages zen moments and the periodic auto quote.
type ZenService interface {
	List(ctx context.Context) ([]*models.ZenMoment, error)
	Watch(ctx context.Context) db.Stream
	Create(ctx context.Context, actor models.Actor, req models.ZenRequest) (*models.ZenMoment, error)
	Update(ctx context.Context, actor models.Actor, id string, req models.ZenRequest) error
	Delete(ctx context.Context, actor models.Actor, id string) error
	MaybeSeedQuote(ctx context.Context) (models.SeedResult, error)
}

// AccessService evaluates the sign-in state machine.
type AccessService interface {
	Session(ctx context.Context, actor *models.Actor) (*models.Session, error)
}
