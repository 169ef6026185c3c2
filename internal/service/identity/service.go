package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"applestore-clone/internal/domain"
	custrepo "applestore-clone/internal/repository/customer"
	"go.uber.org/zap"
)

// ProviderGoogle is the provider id recorded for federated Google accounts.
const ProviderGoogle = "google.com"

var (
	// ErrInvalidCredential is returned when the provider token does not verify.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrUnsupportedProvider is returned for credentials from an unknown provider.
	ErrUnsupportedProvider = errors.New("unsupported provider")
)

// Credential is the provider-issued proof exchanged for a signed-in user.
type Credential struct {
	Provider    string
	IDToken     string
	AccessToken string
}

// Config controls ID token verification.
type Config struct {
	Secret   []byte
	Issuer   string
	Audience string
}

// Service is the identity backend: it verifies federated credentials and records the customer.
type Service struct {
	repo     custrepo.Repository
	verifier *tokenVerifier
	logger   *zap.Logger
}

func New(repo custrepo.Repository, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		verifier: newTokenVerifier(cfg.Secret, cfg.Issuer, cfg.Audience, time.Now),
		logger:   logger,
	}
}

// SignIn verifies cred and returns the user it belongs to, creating the customer on first sign-in.
func (s *Service) SignIn(ctx context.Context, cred Credential) (*domain.User, error) {
	provider := strings.TrimSpace(cred.Provider)
	if provider == "" {
		provider = ProviderGoogle
	}
	if provider != ProviderGoogle {
		return nil, ErrUnsupportedProvider
	}

	claims, err := s.verifier.Verify(cred.IDToken)
	if err != nil {
		s.logger.Info("identity: rejected credential", zap.String("provider", provider), zap.Error(err))
		return nil, ErrInvalidCredential
	}
	if cred.AccessToken == "" {
		s.logger.Debug("identity: credential without access token", zap.String("subject", claims.Subject))
	}

	c, err := s.repo.Upsert(ctx, domain.Customer{
		Provider:    provider,
		Subject:     claims.Subject,
		Email:       strings.ToLower(strings.TrimSpace(claims.Email)),
		DisplayName: claims.Name,
	})
	if err != nil {
		return nil, err
	}
	user := c.User()
	s.logger.Info("identity: signed in", zap.String("user_id", user.ID))
	return &user, nil
}
