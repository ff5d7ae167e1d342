package models

import "time"

// Project statuses, in board order.
const (
	ProjectIdea       = "idea"
	ProjectInProgress = "in_progress"
	ProjectShipping   = "shipping"
	ProjectDone       = "done"
)

// ProjectLink is a labelled URL attached to a project.
type ProjectLink struct {
	Label string `json:"label" firestore:"label"`
	URL   string `json:"url" firestore:"url"`
}

// Project is a document in projects.
type Project struct {
	ID          string        `json:"id" firestore:"-"`
	Title       string        `json:"title" firestore:"title"`
	Description string        `json:"description" firestore:"description"`
	Status      string        `json:"status" firestore:"status"`
	Links       []ProjectLink `json:"links" firestore:"links"`
	AuthorUID   string        `json:"authorUid" firestore:"authorUid"`
	AuthorName  string        `json:"authorName" firestore:"authorName"`
	CreatedAt   time.Time     `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time     `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

func (p *Project) SetID(id string) { p.ID = id }

// CompactLinks drops links missing a label or a URL.
func CompactLinks(links []ProjectLink) []ProjectLink {
	out := make([]ProjectLink, 0, len(links))
	for _, l := range links {
		if l.Label != "" && l.URL != "" {
			out = append(out, l)
		}
	}
	return out
}
