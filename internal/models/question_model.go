package models

import "time"

// Question is a document in questions.
type Question struct {
	ID         string    `json:"id" firestore:"-"`
	Title      string    `json:"title" firestore:"title"`
	Body       string    `json:"body" firestore:"body"`
	Tags       []string  `json:"tags" firestore:"tags"`
	AuthorUID  string    `json:"authorUid" firestore:"authorUid"`
	AuthorName string    `json:"authorName" firestore:"authorName"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt  time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

func (q *Question) SetID(id string) { q.ID = id }

// Answer lives in questions/{questionId}/answers.
type Answer struct {
	ID         string    `json:"id" firestore:"-"`
	Body       string    `json:"body" firestore:"body"`
	AuthorUID  string    `json:"authorUid" firestore:"authorUid"`
	AuthorName string    `json:"authorName" firestore:"authorName"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt  time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

func (a *Answer) SetID(id string) { a.ID = id }
