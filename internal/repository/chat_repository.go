package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AbrahamLara/chat-app-backend/internal/domain/chat"
)

type GormChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &GormChatRepository{db: db}
}

func (r *GormChatRepository) CreateChat(ctx context.Context, c *chat.Chat) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *GormChatRepository) CreateMessage(ctx context.Context, m *chat.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *GormChatRepository) CreateMemberships(ctx context.Context, memberships []chat.UserChat) error {
	if len(memberships) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&memberships).Error
}

func (r *GormChatRepository) CreateRecipients(ctx context.Context, recipients []chat.MessageRecipient) error {
	if len(recipients) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&recipients).Error
}

func (r *GormChatRepository) IsMember(ctx context.Context, userID, chatID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&chat.UserChat{}).
		Where("user_id = ? AND chat_id = ?", userID, chatID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormChatRepository) GetChatMembers(ctx context.Context, chatID uuid.UUID) ([]chat.Member, error) {
	var members []chat.Member
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id AS id, users.name AS name").
		Joins("JOIN user_chats ON user_chats.user_id = users.id").
		Where("user_chats.chat_id = ?", chatID).
		Scan(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// LatestMessageTimes groups the caller's message recipients by membership
// and keeps only the newest created_at per group.
func (r *GormChatRepository) LatestMessageTimes(ctx context.Context, userID uuid.UUID) ([]chat.MembershipLatest, error) {
	var rows []chat.MembershipLatest
	err := r.db.WithContext(ctx).
		Model(&chat.MessageRecipient{}).
		Select("user_chat_id, MAX(created_at) AS latest_at").
		Where("user_id = ?", userID).
		Group("user_chat_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// LatestMessages re-queries the recipients matching the (membership,
// timestamp) pairs and joins out to messages, chats, and authors. A single
// aggregate query cannot return both the max timestamp and the joined row
// contents portably, hence the second round trip. Ties on created_at break
// by chat id ascending so the listing order is deterministic.
func (r *GormChatRepository) LatestMessages(ctx context.Context, pairs []chat.MembershipLatest) ([]chat.LatestChatRow, error) {
	if len(pairs) == 0 {
		return []chat.LatestChatRow{}, nil
	}

	cond := r.db.Session(&gorm.Session{NewDB: true})
	for i, p := range pairs {
		if i == 0 {
			cond = cond.Where("mr.user_chat_id = ? AND mr.created_at = ?", p.UserChatID, p.LatestAt)
		} else {
			cond = cond.Or("mr.user_chat_id = ? AND mr.created_at = ?", p.UserChatID, p.LatestAt)
		}
	}

	var rows []chat.LatestChatRow
	err := r.db.WithContext(ctx).
		Table("message_recipients AS mr").
		Select("chats.id AS chat_id, chats.name AS chat_name, users.name AS author, "+
			"messages.message AS text, messages.created_at AS message_created_at, mr.created_at AS received_at").
		Joins("JOIN user_chats ON user_chats.id = mr.user_chat_id").
		Joins("JOIN chats ON chats.id = user_chats.chat_id").
		Joins("JOIN messages ON messages.id = mr.message_id").
		Joins("JOIN users ON users.id = messages.user_id").
		Where(cond).
		Order("mr.created_at DESC, chats.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// WithTx binds a repository to one transaction for the chat-creation write
// sequence. Callers get all-or-nothing persistence of chat, opening
// message, memberships, and receipts.
func (r *GormChatRepository) WithTx(ctx context.Context, fn func(ChatRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormChatRepository{db: tx})
	})
}
