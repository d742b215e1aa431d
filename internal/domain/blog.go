package domain

import "time"

type ApprovalState string

const (
	BlogPending  ApprovalState = "pending"
	BlogApproved ApprovalState = "approved"
	BlogRejected ApprovalState = "rejected"
)

type Blog struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Body          string        `json:"body"`
	AuthorName    string        `json:"author_name"`
	CreatedAt     time.Time     `json:"created_at,omitempty"`
	ApprovalState ApprovalState `json:"approval_state"`
}

// BlogDraft is a user-authored submission kept locally until it is sent
// for moderation.
type BlogDraft struct {
	PenName string    `json:"pen_name"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	SavedAt time.Time `json:"saved_at"`
}
