package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/powergrid-apps/billkeeper/internal/config"
	"github.com/powergrid-apps/billkeeper/internal/logger"
	"github.com/powergrid-apps/billkeeper/internal/store"
	"github.com/powergrid-apps/billkeeper/internal/utils"
	"github.com/powergrid-apps/billkeeper/models"
)

// authService implements [AuthService] with bcrypt password verification and
// HMAC-SHA256 signed JWTs whose subject is the consumer's formatted id.
type authService struct {
	consumers store.ConsumerRepository

	tokenIssuer   string
	tokenSignKey  string
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] with token parameters from cfg.
func NewAuthService(consumers store.ConsumerRepository, cfg config.App, logger *logger.Logger) AuthService {
	logger.Debug().Msg("creating auth service")
	return &authService{
		consumers:     consumers,
		tokenIssuer:   cfg.TokenIssuer,
		tokenSignKey:  cfg.TokenSignKey,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// Login verifies the email/password pair and issues a fresh JWT.
//
// An unknown email and a wrong password both return
// [ErrInvalidCredentials]; the caller cannot tell which one failed.
func (s *authService) Login(ctx context.Context, email, password string) (models.Token, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		return models.Token{}, ErrInvalidDataProvided
	}

	consumer, err := s.consumers.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrConsumerNotFound) {
			log.Warn().Str("email", email).Msg("login attempt with unknown email")
			return models.Token{}, ErrInvalidCredentials
		}
		log.Err(err).Msg("error finding consumer by email")
		return models.Token{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(consumer.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("id", consumer.ID).Msg("login attempt with wrong password")
		return models.Token{}, ErrInvalidCredentials
	}

	return s.CreateToken(ctx, consumer.ID)
}

// CreateToken issues a signed JWT for the given consumer id.
func (s *authService) CreateToken(ctx context.Context, consumerID string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.GenerateJWTToken(s.tokenIssuer, consumerID, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		log.Err(err).Str("id", consumerID).Msg("error creating token")
		return models.Token{}, ErrTokenCreationFailed
	}

	return token, nil
}

// ParseToken validates tokenString and returns the parsed token. Every
// validation failure is normalised to [ErrTokenIsExpiredOrInvalid] so that
// callers never branch on the reason.
func (s *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		log.Warn().Err(err).Msg("token validation failed")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
