package models

import "time"

// Link is a shared bookmark in links.
type Link struct {
	ID          string    `json:"id" firestore:"-"`
	Title       string    `json:"title" firestore:"title"`
	URL         string    `json:"url" firestore:"url"`
	Description string    `json:"description" firestore:"description"`
	Tags        []string  `json:"tags" firestore:"tags"`
	AuthorUID   string    `json:"authorUid" firestore:"authorUid"`
	AuthorName  string    `json:"authorName" firestore:"authorName"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}

func (l *Link) SetID(id string) { l.ID = id }

// Tube is a shared video in tubes. The video fields are derived from URL
// when the tube is served and are never written to the store.
type Tube struct {
	ID           string    `json:"id" firestore:"-"`
	Title        string    `json:"title" firestore:"title"`
	URL          string    `json:"url" firestore:"url"`
	Description  string    `json:"description" firestore:"description"`
	Tags         []string  `json:"tags" firestore:"tags"`
	AuthorUID    string    `json:"authorUid" firestore:"authorUid"`
	AuthorName   string    `json:"authorName" firestore:"authorName"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
	VideoID      string    `json:"videoId,omitempty" firestore:"-"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty" firestore:"-"`
	EmbedURL     string    `json:"embedUrl,omitempty" firestore:"-"`
}

func (t *Tube) SetID(id string) { t.ID = id }
