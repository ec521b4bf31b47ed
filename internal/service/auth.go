package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"
	"unicode"

	"github.com/dkirsanov/inventorypro/internal/events"
	"github.com/dkirsanov/inventorypro/internal/hash"
	"github.com/dkirsanov/inventorypro/internal/logging"
	"github.com/dkirsanov/inventorypro/internal/mailer"
	"github.com/dkirsanov/inventorypro/internal/models"
	"github.com/dkirsanov/inventorypro/internal/repo"
	"github.com/dkirsanov/inventorypro/internal/tokens"
	"github.com/dkirsanov/inventorypro/internal/transport"
)

// Burned on lookups of unknown usernames so both login failure paths pay
// for a bcrypt compare.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthService struct {
	Repo     *repo.GormRepo
	Secret   []byte
	TokenTTL time.Duration
	Producer *events.Producer
	Mailer   *mailer.Mailer
}

type LoginResult struct {
	AccessToken string
	TokenType   string
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", ErrValidation)
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("%w: password must contain at least one letter and one number", ErrValidation)
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if len(req.Username) < 2 || len(req.Username) > 50 {
		return nil, fmt.Errorf("%w: username must be between 2 and 50 characters", ErrValidation)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
		IsActive:     true,
	}

	if err := s.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserExists) {
			return nil, fmt.Errorf("%w: username or email already taken", ErrUserExists)
		}
		l.Error("register_error", "error", err)
		return nil, err
	}

	// Welcome notification is fire-and-forget: a failure must never fail or
	// roll back the registration.
	go s.notifyRegistered(user.ID, user.Email, user.Username)

	l.Info("register_success", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) notifyRegistered(userID uint, email, username string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	l := logging.FromContext(ctx).With("svc", "auth.notify")

	if err := s.Mailer.SendWelcome(email, username); err != nil {
		l.Error("welcome_mail_failed", "user_id", userID, "error", err)
	}

	event := map[string]any{
		"type":     "user_registered",
		"user_id":  userID,
		"username": username,
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicUserEvents, fmt.Sprint(userID), event); err != nil {
		l.Error("kafka_publish_failed", "user_id", userID, "error", err)
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		hash.CheckPassword(dummyHash, password)
		l.Warn("login_failed", "reason", "unknown identifier")
		return nil, ErrInvalidCredentials
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		l.Warn("login_failed", "reason", "inactive account", "user_id", user.ID)
		return nil, ErrInactiveAccount
	}

	token, err := tokens.Issue(s.Secret, user.ID, user.Role, s.TokenTTL)
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign token", "error", err)
		return nil, err
	}

	l.Info("login_success", "user_id", user.ID)
	return &LoginResult{AccessToken: token, TokenType: "bearer"}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*transport.ProfileResponse, error) {
	user, err := s.Repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	orders := user.Orders
	if orders == nil {
		orders = []models.Order{}
	}
	return &transport.ProfileResponse{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
		IsActive: user.IsActive,
		Address:  user.Address,
		Orders:   orders,
	}, nil
}

func (s *AuthService) UpsertAddress(ctx context.Context, userID uint, req transport.AddressRequest) (*models.Address, error) {
	if req.Street == "" || req.City == "" || req.ZipCode == "" {
		return nil, fmt.Errorf("%w: street, city and zip_code are required", ErrValidation)
	}
	return s.Repo.UpsertAddress(ctx, userID, req.Street, req.City, req.ZipCode)
}
