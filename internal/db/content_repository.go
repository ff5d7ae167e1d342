package db

import (
	"cloud.google.com/go/firestore"

	"github.com/cse-connect/connect-backend/internal/models"
)

// NewProjectStore returns projects/, most recently updated first.
func NewProjectStore(client *firestore.Client) Store[models.Project] {
	return NewCollection[models.Project](client.Collection(projectsCollection), "updatedAt", firestore.Desc)
}

// NewLinkStore returns links/, newest first.
func NewLinkStore(client *firestore.Client) Store[models.Link] {
	return NewCollection[models.Link](client.Collection(linksCollection), "createdAt", firestore.Desc)
}

// NewTubeStore returns tubes/, newest first.
func NewTubeStore(client *firestore.Client) Store[models.Tube] {
	return NewCollection[models.Tube](client.Collection(tubesCollection), "createdAt", firestore.Desc)
}

type firestoreQARepository struct {
	client    *firestore.Client
	questions *Collection[models.Question, *models.Question]
}

// NewFirestoreQARepository creates a QARepository over questions/.
func NewFirestoreQARepository(client *firestore.Client) QARepository {
	return &firestoreQARepository{
		client:    client,
		questions: NewCollection[models.Question](client.Collection(questionsCollection), "updatedAt", firestore.Desc),
	}
}

func (r *firestoreQARepository) Questions() Store[models.Question] {
	return r.questions
}

func (r *firestoreQARepository) Answers(questionID string) Store[models.Answer] {
	ref := r.client.Collection(questionsCollection).Doc(questionID).Collection(answersCollection)
	return NewCollection[models.Answer](ref, "createdAt", firestore.Asc)
}

type firestoreChatRepository struct {
	client   *firestore.Client
	channels *Collection[models.ChatChannel, *models.ChatChannel]
}

// NewFirestoreChatRepository creates a ChatRepository over chatChannels/.
func NewFirestoreChatRepository(client *firestore.Client) ChatRepository {
	return &firestoreChatRepository{
		client:   client,
		channels: NewCollection[models.ChatChannel](client.Collection(channelsCollection), "createdAt", firestore.Asc),
	}
}

func (r *firestoreChatRepository) Channels() Store[models.ChatChannel] {
	return r.channels
}

func (r *firestoreChatRepository) Messages(channelID string) Store[models.Message] {
	ref := r.client.Collection(channelsCollection).Doc(channelID).Collection(messagesCollection)
	return NewCollection[models.Message](ref, "createdAt", firestore.Asc)
}
