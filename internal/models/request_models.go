package models

// UpdateProfileRequest is the body of PATCH /me. Phone must be E.164 when set.
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName,omitempty" binding:"omitempty,max=80"`
	Phone       *string `json:"phone,omitempty"`
}

// CreatePostRequest is the body of POST /feed.
type CreatePostRequest struct {
	Text     string `json:"text" binding:"max=5000"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// UpdatePostRequest carries the editable post fields.
type UpdatePostRequest struct {
	Text     *string `json:"text,omitempty" binding:"omitempty,max=5000"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// ReactionRequest is the body of POST /feed/:postId/reactions.
type ReactionRequest struct {
	Reaction string `json:"reaction" binding:"required,oneof=like love celebrate"`
}

// CommentRequest is the body of POST /feed/:postId/comments.
type CommentRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

// ProjectRequest creates or replaces a project.
type ProjectRequest struct {
	Title       string        `json:"title" binding:"required,max=200"`
	Description string        `json:"description"`
	Status      string        `json:"status" binding:"required,oneof=idea in_progress shipping done"`
	Links       []ProjectLink `json:"links"`
}

// QuestionRequest creates or replaces a question.
type QuestionRequest struct {
	Title string   `json:"title" binding:"required,max=300"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

// AnswerRequest creates or replaces an answer.
type AnswerRequest struct {
	Body string `json:"body" binding:"required"`
}

// LinkRequest creates or replaces a link or a tube.
type LinkRequest struct {
	Title       string   `json:"title" binding:"required,max=300"`
	URL         string   `json:"url" binding:"required,url"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// ChannelRequest creates a chat channel.
type ChannelRequest struct {
	Name string `json:"name" binding:"required,max=80"`
}

// MessageRequest sends a chat message.
type MessageRequest struct {
	Text string `json:"text" binding:"required,max=4000"`
}

// AlertRequest creates an alert.
type AlertRequest struct {
	Message string `json:"message" binding:"max=1600"`
}

// ZenRequest creates or replaces a zen moment.
type ZenRequest struct {
	Text        string `json:"text"`
	Type        string `json:"type" binding:"required,oneof=text quote photo"`
	ImageURL    string `json:"imageUrl,omitempty"`
	QuoteAuthor string `json:"quoteAuthor,omitempty"`
	SourceName  string `json:"sourceName,omitempty"`
	SourceURL   string `json:"sourceUrl,omitempty"`
}
