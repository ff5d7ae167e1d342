package models

import "time"

// Zen moment kinds.
const (
	ZenText  = "text"
	ZenQuote = "quote"
	ZenPhoto = "photo"
)

// ZenMoment is a document in zenMoments.
type ZenMoment struct {
	ID          string    `json:"id" firestore:"-"`
	Text        string    `json:"text" firestore:"text"`
	Type        string    `json:"type" firestore:"type"`
	ImageURL    string    `json:"imageUrl" firestore:"imageUrl"`
	QuoteAuthor string    `json:"quoteAuthor" firestore:"quoteAuthor"`
	SourceName  string    `json:"sourceName" firestore:"sourceName"`
	SourceURL   string    `json:"sourceUrl" firestore:"sourceUrl"`
	AuthorUID   string    `json:"authorUid" firestore:"authorUid"`
	AuthorName  string    `json:"authorName" firestore:"authorName"`
	IsAuto      bool      `json:"isAuto,omitempty" firestore:"isAuto,omitempty"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}

func (z *ZenMoment) SetID(id string) { z.ID = id }

// ZenMeta is the zenMeta/autoQuote bookkeeping document.
type ZenMeta struct {
	LastGeneratedAt time.Time `json:"lastGeneratedAt" firestore:"lastGeneratedAt"`
	LastQuote       string    `json:"lastQuote" firestore:"lastQuote"`
	LastAuthor      string    `json:"lastAuthor" firestore:"lastAuthor"`
}

// Quote is what the quote source hands back for an auto moment.
type Quote struct {
	Text       string
	Author     string
	SourceName string
	SourceURL  string
}

// SeedResult reports whether an auto quote was written.
type SeedResult struct {
	Skipped bool `json:"skipped,omitempty"`
	Created bool `json:"created,omitempty"`
}
