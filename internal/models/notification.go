package models

import "time"

// Notification is the audit record written when a flagged message requires a
// parent alert. The masked text is stored in Content; OriginalContent keeps
// the unmasked message for the parent's review.
type Notification struct {
	ID                    int64     `db:"id" json:"id"`
	CorrelationID         string    `db:"correlation_id" json:"correlation_id"`
	SenderChildUsername   string    `db:"sender_child_username" json:"sender"`
	ReceiverChildUsername string    `db:"receiver_child_username" json:"receiver"`
	ParentUsername        string    `db:"parent_username" json:"parent_username"`
	Content               string    `db:"content" json:"content"`
	OriginalContent       string    `db:"original_content" json:"original_content"`
	RiskType              string    `db:"risk_type" json:"risk_type"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
	IsRead                bool      `db:"is_read" json:"is_read"`

	// Joined from the children table for the parent feed.
	ReceiverFirstName string `db:"receiver_first_name" json:"receiver_first_name,omitempty"`
	ReceiverLastName  string `db:"receiver_last_name" json:"receiver_last_name,omitempty"`
}
