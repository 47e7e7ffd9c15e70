package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"batdongsan-api/internal/core/auth"
	"batdongsan-api/internal/domain"
	"batdongsan-api/internal/repo"
	"batdongsan-api/pkg/utils"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("old password does not match")
	ErrUserNotFound       = errors.New("user not found")
	ErrBadVerifyToken     = errors.New("invalid verification token")
)

type UserService struct {
	users domain.UserRepository
	jwt   *auth.JWTer
	log   *zap.Logger
}

func NewUserService(users domain.UserRepository, jwt *auth.JWTer, log *zap.Logger) *UserService {
	return &UserService{users: users, jwt: jwt, log: log}
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
}

// Register creates a client account and returns it with a fresh access
// token. The email verification token is handed to the mail collaborator;
// here it is only logged.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		PasswordHash: utils.HashPassword(in.Password),
		Role:         domain.RoleClient,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// Concurrent registration with the same email loses here.
		if repo.IsDuplicate(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.jwt.Issue(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}
	if vtok, err := s.jwt.IssueEmailVerification(u.ID); err == nil {
		s.log.Info("email verification token issued",
			zap.String("user_id", u.ID), zap.String("token", vtok))
	}
	return u, token, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.jwt.Issue(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// ChangePassword leaves the stored hash untouched unless oldPassword
// matches it.
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if !utils.CheckPassword(oldPassword, u.PasswordHash) {
		return ErrWrongPassword
	}
	return s.users.UpdatePassword(ctx, userID, utils.HashPassword(newPassword))
}

func (s *UserService) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.ParseEmailVerification(token)
	if err != nil {
		return nil, ErrBadVerifyToken
	}
	u, err := s.users.FindByID(ctx, claims.UID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	stamp := time.Now().Format(time.RFC3339)
	if err := s.users.SetEmailVerified(ctx, u.ID, stamp); err != nil {
		return nil, err
	}
	u.EmailVerified = stamp
	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
