package services

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/AbrahamLara/chat-app-backend/config"
	"github.com/AbrahamLara/chat-app-backend/internal/domain/user"
	"github.com/AbrahamLara/chat-app-backend/internal/repository"
	apperrors "github.com/AbrahamLara/chat-app-backend/pkg/errors"
)

const minPasswordLength = 8

type AuthService struct {
	userRepo   repository.UserRepository
	jwtSecret  []byte
	accessTTL  time.Duration
	bcryptCost int
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(cfg.JWTSecret),
		accessTTL:  time.Duration(cfg.JWTExpiryMin) * time.Minute,
		bcryptCost: cfg.BcryptCost,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// TokenData is the verified identity every chat route trusts. Nothing
// else in the request identifies the caller.
type TokenData struct {
	UserID   uuid.UUID
	UserName string
}

type AccessClaims struct {
	UserID   string `json:"sub"`
	UserName string `json:"name"`
	jwt.RegisteredClaims
}

// Register creates the user row first and sets the password hash with a
// second write. If hashing or the password save fails the row is deleted
// so no account is left without a usable password.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	if err := validateRegister(in); err != nil {
		return err
	}

	if _, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return apperrors.ErrAlreadyExists
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	newUser := &user.User{
		ID:        uuid.New(),
		Name:      in.Name,
		Email:     in.Email,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return apperrors.ErrAlreadyExists
		}
		return err
	}

	hash, err := hashPassword(in.Password, s.bcryptCost)
	if err != nil {
		_ = s.userRepo.Delete(ctx, newUser.ID)
		return err
	}
	if err := s.userRepo.SetPassword(ctx, newUser.ID, hash); err != nil {
		_ = s.userRepo.Delete(ctx, newUser.ID)
		return err
	}

	return nil
}

// Login verifies the credentials and issues a signed access token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, error) {
	if err := validateLogin(in); err != nil {
		return "", err
	}

	u, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.ErrInvalidEmail
		}
		return "", err
	}

	if err := comparePassword(u.Password, in.Password); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	return s.newAccessToken(u.ID, u.Name)
}

// ParseAccessToken verifies the token signature and expiry and returns the
// embedded identity. Verifying the same token twice yields the same data.
func (s *AuthService) ParseAccessToken(tokenString string) (TokenData, error) {
	if tokenString == "" {
		return TokenData{}, apperrors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return TokenData{}, apperrors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return TokenData{}, apperrors.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return TokenData{}, apperrors.ErrUnauthorized
	}

	return TokenData{UserID: userID, UserName: claims.UserName}, nil
}

func (s *AuthService) newAccessToken(userID uuid.UUID, userName string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID:   userID.String(),
		UserName: userName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// HTTPStatus maps service errors to response status codes. Login and
// registration conflicts surface as 400 rather than 401/409 so the auth
// endpoints never reveal more than a form-level failure.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput),
		errors.Is(err, apperrors.ErrInvalidEmail),
		errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrAlreadyExists):
		return 400
	case errors.Is(err, apperrors.ErrUnauthorized):
		return 401
	case errors.Is(err, apperrors.ErrForbidden):
		return 403
	case errors.Is(err, apperrors.ErrNotFound):
		return 404
	case errors.Is(err, apperrors.ErrRateLimited):
		return 429
	default:
		return 500
	}
}

type ctxKey string

var userKey ctxKey = "auth_user"

// WithUserContext attaches the verified identity to the request context.
func WithUserContext(ctx context.Context, data TokenData) context.Context {
	return context.WithValue(ctx, userKey, data)
}

// UserFromContext returns the identity placed by the auth middleware.
func UserFromContext(ctx context.Context) (TokenData, bool) {
	value := ctx.Value(userKey)
	if value == nil {
		return TokenData{}, false
	}
	data, ok := value.(TokenData)
	return data, ok
}

func validateRegister(in RegisterInput) error {
	fields := map[string]string{}
	if in.Name == "" {
		fields["name"] = "name is required"
	}
	if in.Email == "" {
		fields["email"] = "email is required"
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		fields["email"] = "email is not valid"
	}
	if len(in.Password) < minPasswordLength {
		fields["password"] = "password must be at least 8 characters"
	}
	if len(fields) > 0 {
		return &apperrors.ValidationError{Fields: fields}
	}
	return nil
}

func validateLogin(in LoginInput) error {
	fields := map[string]string{}
	if in.Email == "" {
		fields["email"] = "email is required"
	}
	if in.Password == "" {
		fields["password"] = "password is required"
	}
	if len(fields) > 0 {
		return &apperrors.ValidationError{Fields: fields}
	}
	return nil
}

func hashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
