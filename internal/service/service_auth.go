package service

import (
	"context"
	"fmt"

	"github.com/mfedotov/credvault/internal/crypto"
	"github.com/mfedotov/credvault/internal/logger"
	"github.com/mfedotov/credvault/internal/store"
	"github.com/mfedotov/credvault/models"
)

// authService is the concrete implementation of AuthService. It handles
// self-registration, credential verification and session issuance using a
// UserRepository for persistence, bcrypt for password hashing, and a
// TokenService for JWTs.
type authService struct {
	userRepository store.UserRepository
	hasher         crypto.PasswordHasher
	tokens         TokenService
	logger         *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repository,
// password hasher and token service.
func NewAuthService(userRepository store.UserRepository, hasher crypto.PasswordHasher, tokens TokenService, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		tokens:         tokens,
		logger:         logger,
	}
}

// Register creates a new pending account. The account starts unverified and
// inactive; it cannot log in until an admin approves it. Self-registration
// may request the technician or viewer role, never admin.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validateUsername(req.Username); err != nil {
		return models.User{}, err
	}
	if err := validateEmail(req.Email); err != nil {
		return models.User{}, err
	}
	if err := validatePassword(req.Password); err != nil {
		return models.User{}, err
	}
	role := req.Role
	if role == "" {
		role = models.RoleViewer
	}
	if !role.SelfAssignable() {
		return models.User{}, fmt.Errorf("%w: role must be technician or viewer", ErrValidation)
	}

	hash, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         role,
		IsActive:     false,
		IsVerified:   false,
	})
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered, awaiting approval")
	return user, nil
}

// Login authenticates by email and password and issues a session token.
// Unknown email and wrong password are indistinguishable to the caller, and
// the password is always checked before the account state so that timing
// does not reveal whether the state gate or the password failed.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		return models.User{}, models.Token{}, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if err != nil {
		log.Debug().Str("email", req.Email).Msg("login failed: user lookup")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	if !a.hasher.Verify(req.Password, user.PasswordHash) {
		log.Debug().Int64("user_id", user.ID).Msg("login failed: wrong password")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	if !user.IsActive || !user.IsVerified {
		log.Info().Int64("user_id", user.ID).Msg("login refused: account inactive or pending")
		return models.User{}, models.Token{}, ErrAccountInactive
	}

	token, err := a.tokens.CreateToken(user)
	if err != nil {
		log.Err(err).Int64("user_id", user.ID).Msg("token creation failed")
		return models.User{}, models.Token{}, fmt.Errorf("token creation failed: %w", err)
	}

	log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user logged in")
	return user, token, nil
}

// GetUser resolves an account by ID. The authentication middleware calls it
// on every request so that deactivation takes effect immediately, not at
// token expiry.
func (a *authService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}
	return user, nil
}
