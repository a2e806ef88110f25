package chat

import (
	"time"

	"github.com/google/uuid"
)

// Chat represents the chats table.
type Chat struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	IsGroup   bool
	CreatedAt time.Time
}

// UserChat represents the user_chats table linking one user to one chat.
// There is deliberately no unique index on (user_id, chat_id): the
// membership union built at chat creation is not de-duplicated, so a
// caller who lists themselves in the participant set produces two rows.
type UserChat struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ChatID    uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time
}

// Message represents the messages table. Immutable once created.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Message   string    `gorm:"not null"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	ChatID    uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
}

// MessageRecipient represents the message_recipients table: one row per
// (membership, message) pair, the member's copy of the message.
type MessageRecipient struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserChatID uuid.UUID `gorm:"type:uuid;index;not null"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null"`
	MessageID  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt  time.Time
}

func (Chat) TableName() string {
	return "chats"
}

func (UserChat) TableName() string {
	return "user_chats"
}

func (Message) TableName() string {
	return "messages"
}

func (MessageRecipient) TableName() string {
	return "message_recipients"
}

// MembershipLatest is the phase-one aggregation row: per membership, the
// timestamp of the most recent message recipient.
type MembershipLatest struct {
	UserChatID uuid.UUID `gorm:"column:user_chat_id"`
	LatestAt   time.Time `gorm:"column:latest_at"`
}

// LatestChatRow is the flattened phase-two join row for one chat's most
// recent message visible to the caller.
type LatestChatRow struct {
	ChatID           uuid.UUID `gorm:"column:chat_id"`
	ChatName         string    `gorm:"column:chat_name"`
	Author           string    `gorm:"column:author"`
	Text             string    `gorm:"column:text"`
	MessageCreatedAt time.Time `gorm:"column:message_created_at"`
	ReceivedAt       time.Time `gorm:"column:received_at"`
}

// Member is a chat member projection returned by the member listing.
type Member struct {
	ID   uuid.UUID `gorm:"column:id"`
	Name string    `gorm:"column:name"`
}
