package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/pitstop/internal/auth"
	"github.com/UnknownOlympus/pitstop/internal/models"
	"github.com/UnknownOlympus/pitstop/internal/repository"
)

// AccountService registers drivers and logs in both drivers and garage owners.
type AccountService struct {
	log    *slog.Logger
	store  repository.AccountStore
	issuer *auth.Issuer
}

func NewAccountService(log *slog.Logger, store repository.AccountStore, issuer *auth.Issuer) *AccountService {
	return &AccountService{log: log, store: store, issuer: issuer}
}

// RegisterUser creates a driver account.
func (s *AccountService) RegisterUser(ctx context.Context, name, email, password string) (*models.Account, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || password == "" || !validEmail(email) {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	acc := models.Account{Name: name, Email: email, PasswordHash: hash, Role: models.RoleUser}
	acc.ID, err = s.store.CreateAccount(ctx, acc)
	if errors.Is(err, repository.ErrConflict) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.log.InfoContext(ctx, "User registered", "account", acc.ID)
	return &acc, nil
}

// Login checks the credentials of an account with the given role and returns a signed token.
func (s *AccountService) Login(ctx context.Context, email, password string, role models.Role) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	acc, err := s.store.AccountByEmail(ctx, email, role)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("failed to load account: %w", err)
	}

	if err = auth.CheckPassword(acc.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.log.InfoContext(ctx, "Rejected login", "account", acc.ID, "role", role)
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	return s.issuer.Issue(*acc)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
