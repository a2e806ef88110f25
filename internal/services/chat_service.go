package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AbrahamLara/chat-app-backend/internal/domain/chat"
	"github.com/AbrahamLara/chat-app-backend/internal/repository"
	apperrors "github.com/AbrahamLara/chat-app-backend/pkg/errors"
)

const maxChatNameLength = 50

type ChatService struct {
	repo repository.ChatRepository
}

func NewChatService(repo repository.ChatRepository) *ChatService {
	return &ChatService{repo: repo}
}

type CreateChatInput struct {
	Caller   TokenData
	UserIDs  []uuid.UUID
	ChatName string
	Message  string
}

type MessagePayload struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatSummary struct {
	ID      uuid.UUID      `json:"id"`
	Name    string         `json:"name"`
	Message MessagePayload `json:"message"`
}

type MemberInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Create persists a new group chat with its opening message, one
// membership per participant, and one delivery receipt per membership.
// The caller is always appended to the membership set; the set is not
// de-duplicated, so a caller listed in UserIDs gets two membership rows.
// All writes run in one transaction.
func (s *ChatService) Create(ctx context.Context, in CreateChatInput) (ChatSummary, error) {
	if err := validateCreateChat(in); err != nil {
		return ChatSummary{}, err
	}

	memberIDs := append(append([]uuid.UUID{}, in.UserIDs...), in.Caller.UserID)
	now := time.Now()

	newChat := chat.Chat{
		ID:        uuid.New(),
		Name:      in.ChatName,
		IsGroup:   true,
		CreatedAt: now,
	}
	opening := chat.Message{
		ID:        uuid.New(),
		Message:   in.Message,
		UserID:    in.Caller.UserID,
		ChatID:    newChat.ID,
		CreatedAt: now,
	}

	err := s.repo.WithTx(ctx, func(tx repository.ChatRepository) error {
		if err := tx.CreateChat(ctx, &newChat); err != nil {
			return err
		}
		if err := tx.CreateMessage(ctx, &opening); err != nil {
			return err
		}

		memberships := make([]chat.UserChat, len(memberIDs))
		for i, memberID := range memberIDs {
			memberships[i] = chat.UserChat{
				ID:        uuid.New(),
				UserID:    memberID,
				ChatID:    newChat.ID,
				CreatedAt: now,
			}
		}
		if err := tx.CreateMemberships(ctx, memberships); err != nil {
			return err
		}

		recipients := make([]chat.MessageRecipient, len(memberships))
		for i, membership := range memberships {
			recipients[i] = chat.MessageRecipient{
				ID:         uuid.New(),
				UserChatID: membership.ID,
				UserID:     membership.UserID,
				MessageID:  opening.ID,
				CreatedAt:  now,
			}
		}
		return tx.CreateRecipients(ctx, recipients)
	})
	if err != nil {
		return ChatSummary{}, err
	}

	return ChatSummary{
		ID:   newChat.ID,
		Name: newChat.Name,
		Message: MessagePayload{
			Author:    in.Caller.UserName,
			Text:      opening.Message,
			CreatedAt: opening.CreatedAt,
		},
	}, nil
}

// ListLatest returns one entry per chat the caller belongs to, carrying
// the most recent message visible to them, newest first.
func (s *ChatService) ListLatest(ctx context.Context, userID uuid.UUID) ([]ChatSummary, error) {
	pairs, err := s.repo.LatestMessageTimes(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.LatestMessages(ctx, pairs)
	if err != nil {
		return nil, err
	}

	chats := make([]ChatSummary, len(rows))
	for i, row := range rows {
		chats[i] = ChatSummary{
			ID:   row.ChatID,
			Name: row.ChatName,
			Message: MessagePayload{
				Author:    row.Author,
				Text:      row.Text,
				CreatedAt: row.MessageCreatedAt,
			},
		}
	}
	return chats, nil
}

// Members lists the users of a chat. Callers without a membership row get
// ErrForbidden whether or not the chat exists, so non-members cannot
// probe for chat ids.
func (s *ChatService) Members(ctx context.Context, callerID, chatID uuid.UUID) ([]MemberInfo, error) {
	isMember, err := s.repo.IsMember(ctx, callerID, chatID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.ErrForbidden
	}

	members, err := s.repo.GetChatMembers(ctx, chatID)
	if err != nil {
		return nil, err
	}

	result := make([]MemberInfo, len(members))
	for i, m := range members {
		result[i] = MemberInfo{ID: m.ID, Name: m.Name}
	}
	return result, nil
}

func validateCreateChat(in CreateChatInput) error {
	fields := map[string]string{}
	if in.ChatName == "" {
		fields["chatName"] = "chat name is required"
	} else if len(in.ChatName) > maxChatNameLength {
		fields["chatName"] = "chat name is too long"
	}
	if in.Message == "" {
		fields["message"] = "message is required"
	}
	if len(fields) > 0 {
		return &apperrors.ValidationError{Fields: fields}
	}
	return nil
}
