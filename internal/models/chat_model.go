package models

import "time"

// ChatChannel is a document in chatChannels.
type ChatChannel struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

func (c *ChatChannel) SetID(id string) { c.ID = id }

// Message lives in chatChannels/{channelId}/messages and is never edited.
type Message struct {
	ID          string    `json:"id" firestore:"-"`
	Text        string    `json:"text" firestore:"text"`
	AuthorUID   string    `json:"authorUid" firestore:"authorUid"`
	AuthorName  string    `json:"authorName" firestore:"authorName"`
	AuthorPhoto string    `json:"authorPhoto,omitempty" firestore:"authorPhoto,omitempty"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

func (m *Message) SetID(id string) { m.ID = id }
