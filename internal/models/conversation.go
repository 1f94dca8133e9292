package models

import "time"

// Roles a conversation turn can carry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is one message in a session's conversation log. The log
// is strictly append-only: no update or delete path exists anywhere in the
// codebase.
type ConversationTurn struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Seq       uint64    `gorm:"autoIncrement;uniqueIndex" json:"-"`
	SessionID string    `gorm:"size:36;index;not null" json:"session_id"`
	Role      string    `gorm:"size:16;not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
