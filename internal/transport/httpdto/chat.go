package httpdto

import "github.com/AbrahamLara/chat-app-backend/internal/services"

// CreateChatRequest is used for POST /chats. UserIDs holds the other
// participants; the caller is taken from the verified token.
type CreateChatRequest struct {
	UserIDs  []string `json:"userIDs"`
	ChatName string   `json:"chatName"`
	Message  string   `json:"message"`
}

// CreateChatResponse is returned after successful chat creation
type CreateChatResponse struct {
	Chat services.ChatSummary `json:"chat"`
}

// ListChatsResponse is returned when listing the caller's chats, newest
// message first
type ListChatsResponse struct {
	Chats []services.ChatSummary `json:"chats"`
}

// ListMembersResponse is returned when listing a chat's members
type ListMembersResponse struct {
	Members []services.MemberInfo `json:"members"`
}

// ListUsersResponse is returned when listing registered users
type ListUsersResponse struct {
	Users []services.MemberInfo `json:"users"`
}
