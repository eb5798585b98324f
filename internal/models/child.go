package models

import "time"

// Parent represents a guardian account stored in the 'parents' table.
type Parent struct {
	Username       string `db:"username"`
	FirstName      string `db:"first_name"`
	LastName       string `db:"last_name"`
	Email          string `db:"email"`
	TelegramChatID *int64 `db:"telegram_chat_id"` // Nullable; set when the parent links the alert bot
}

// Child represents a child account stored in the 'children' table.
type Child struct {
	Username       string    `db:"username"`
	FirstName      string    `db:"first_name"`
	LastName       string    `db:"last_name"`
	Email          string    `db:"email"`
	DateOfBirth    time.Time `db:"date_of_birth"`
	TimeControl    *int      `db:"time_control"` // Daily usage limit in minutes, if set
	ParentUsername string    `db:"parent_username"`
	ProfileIcon    *string   `db:"profile_icon"`
}
