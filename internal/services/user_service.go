package services

import (
	"context"

	"github.com/AbrahamLara/chat-app-backend/internal/repository"
)

// UserService backs the participant picker: chat creation needs the ids
// of other registered users.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) List(ctx context.Context) ([]MemberInfo, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]MemberInfo, len(users))
	for i, u := range users {
		result[i] = MemberInfo{ID: u.ID, Name: u.Name}
	}
	return result, nil
}
