package models

import "time"

// Reaction kinds a member can leave on a feed post.
const (
	ReactionLike      = "like"
	ReactionLove      = "love"
	ReactionCelebrate = "celebrate"
)

// Reactions lists every valid reaction kind.
var Reactions = []string{ReactionLike, ReactionLove, ReactionCelebrate}

// IsValidReaction reports whether r is one of Reactions.
func IsValidReaction(r string) bool {
	for _, known := range Reactions {
		if r == known {
			return true
		}
	}
	return false
}

// FeedPost is a document in feedPosts.
type FeedPost struct {
	ID             string            `json:"id" firestore:"-"`
	AuthorUID      string            `json:"authorUid" firestore:"authorUid"`
	AuthorName     string            `json:"authorName" firestore:"authorName"`
	AuthorPhoto    string            `json:"authorPhoto" firestore:"authorPhoto"`
	Text           string            `json:"text" firestore:"text"`
	ImageURL       string            `json:"imageUrl" firestore:"imageUrl"` // inlined data URI
	ReactionCounts map[string]int64  `json:"reactionCounts" firestore:"reactionCounts"`
	ReactionsBy    map[string]string `json:"reactionsBy" firestore:"reactionsBy"` // uid -> reaction
	CreatedAt      time.Time         `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt      time.Time         `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}

func (p *FeedPost) SetID(id string) { p.ID = id }

// Comment lives in feedPosts/{postId}/comments.
type Comment struct {
	ID         string    `json:"id" firestore:"-"`
	AuthorUID  string    `json:"authorUid" firestore:"authorUid"`
	AuthorName string    `json:"authorName" firestore:"authorName"`
	Text       string    `json:"text" firestore:"text"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

func (c *Comment) SetID(id string) { c.ID = id }
