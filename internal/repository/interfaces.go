package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/AbrahamLara/chat-app-backend/internal/domain/chat"
	"github.com/AbrahamLara/chat-app-backend/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	SetPassword(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	ListUsers(ctx context.Context) ([]user.User, error)
}

type ChatRepository interface {
	CreateChat(ctx context.Context, c *chat.Chat) error
	CreateMessage(ctx context.Context, m *chat.Message) error
	CreateMemberships(ctx context.Context, memberships []chat.UserChat) error
	CreateRecipients(ctx context.Context, recipients []chat.MessageRecipient) error

	IsMember(ctx context.Context, userID, chatID uuid.UUID) (bool, error)
	GetChatMembers(ctx context.Context, chatID uuid.UUID) ([]chat.Member, error)

	// LatestMessageTimes is phase one of the latest-chat listing: for every
	// membership of userID, the max recipient created_at grouped by membership.
	LatestMessageTimes(ctx context.Context, userID uuid.UUID) ([]chat.MembershipLatest, error)
	// LatestMessages is phase two: the fully joined rows matching the
	// (membership, timestamp) pairs from phase one, newest first.
	LatestMessages(ctx context.Context, pairs []chat.MembershipLatest) ([]chat.LatestChatRow, error)

	// WithTx runs fn against a repository bound to a single transaction.
	WithTx(ctx context.Context, fn func(ChatRepository) error) error
}
