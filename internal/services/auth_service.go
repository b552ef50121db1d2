package services

import (
	"context"
	"log/slog"

	"github.com/alfarizqi-test/tabungan/internal/core"
)

type credentialRepository interface {
	Authenticate(ctx context.Context, username, password string) (core.Credential, error)
}

// AuthService performs the stateless credential check. There are no
// sessions or tokens; every request that needs identity re-sends the
// credentials.
type AuthService struct {
	repo credentialRepository
}

func NewAuthService(repo credentialRepository) *AuthService {
	return &AuthService{repo: repo}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (core.Credential, error) {
	cred, err := s.repo.Authenticate(ctx, username, password)
	if err != nil {
		slog.WarnContext(ctx, "Login rejected", "username", username)
		return core.Credential{}, err
	}

	slog.InfoContext(ctx, "Login accepted",
		"username", username,
		"role", string(cred.Role))

	return cred, nil
}
