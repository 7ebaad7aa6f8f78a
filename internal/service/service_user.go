package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mfedotov/credvault/internal/crypto"
	"github.com/mfedotov/credvault/internal/logger"
	"github.com/mfedotov/credvault/internal/store"
	"github.com/mfedotov/credvault/models"
)

// userService is the concrete implementation of UserService. Account state
// flips are guarded inside the repository SQL; this layer pre-reads the
// account to turn a guard miss into the precise domain error the caller
// should see.
type userService struct {
	userRepository store.UserRepository
	hasher         crypto.PasswordHasher
	logger         *logger.Logger
}

// NewUserService constructs a UserService wired to the given repository and
// password hasher.
func NewUserService(userRepository store.UserRepository, hasher crypto.PasswordHasher, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		hasher:         hasher,
		logger:         logger,
	}
}

// CreateUser provisions an account on behalf of an admin. Unlike
// self-registration the account is verified and active immediately, any
// role allowed, with the creating admin recorded as approver.
func (u *userService) CreateUser(ctx context.Context, req models.CreateUserRequest, adminID int64) (models.User, error) {
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
	if !role.Valid() {
		return models.User{}, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	hash, err := u.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	now := time.Now()
	user, err := u.userRepository.CreateUser(ctx, models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         role,
		IsActive:     true,
		IsVerified:   true,
		ApprovedBy:   &adminID,
		ApprovedAt:   &now,
	})
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("user_id", user.ID).Int64("admin_id", adminID).Msg("user created by admin")
	return user, nil
}

// ListUsers returns every account, newest first.
func (u *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := u.userRepository.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users failed: %w", err)
	}
	return users, nil
}

// ListPendingUsers returns accounts awaiting approval, newest first.
func (u *userService) ListPendingUsers(ctx context.Context) ([]models.User, error) {
	users, err := u.userRepository.ListPendingUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing pending users failed: %w", err)
	}
	return users, nil
}

// ApproveUser flips a pending account to verified and active, recording the
// approving admin. Approving an already-approved account is an error, not a
// no-op, so racing admins learn their action did not apply.
func (u *userService) ApproveUser(ctx context.Context, userID, adminID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	approved, err := u.userRepository.ApproveUser(ctx, userID, adminID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// The guard missed: either the account does not exist or it is
			// no longer pending. Re-read to tell the two apart.
			existing, findErr := u.userRepository.FindUserByID(ctx, userID)
			if findErr == nil && existing.IsVerified {
				return models.User{}, ErrAlreadyApproved
			}
			return models.User{}, store.ErrUserNotFound
		}
		log.Err(err).Int64("user_id", userID).Msg("user approval failed")
		return models.User{}, fmt.Errorf("user approval failed: %w", err)
	}

	log.Info().Int64("user_id", userID).Int64("admin_id", adminID).Msg("user approved")
	return approved, nil
}

// RejectUser removes a pending account for good. Once approved an account
// can no longer be rejected; deactivate it instead.
func (u *userService) RejectUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	err := u.userRepository.DeleteUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			existing, findErr := u.userRepository.FindUserByID(ctx, userID)
			if findErr == nil && existing.IsVerified {
				return ErrAlreadyApproved
			}
			return store.ErrUserNotFound
		}
		log.Err(err).Int64("user_id", userID).Msg("user rejection failed")
		return fmt.Errorf("user rejection failed: %w", err)
	}

	log.Info().Int64("user_id", userID).Msg("pending user rejected")
	return nil
}

// DeactivateUser suspends an approved account. The admin performing the
// action cannot target themselves; a vault with no active admin is
// unrecoverable from the API.
func (u *userService) DeactivateUser(ctx context.Context, userID, adminID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	if userID == adminID {
		return models.User{}, ErrSelfDeactivation
	}

	user, err := u.userRepository.SetUserActive(ctx, userID, false)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			existing, findErr := u.userRepository.FindUserByID(ctx, userID)
			if findErr == nil && !existing.IsActive {
				return models.User{}, ErrAlreadyInactive
			}
			return models.User{}, store.ErrUserNotFound
		}
		log.Err(err).Int64("user_id", userID).Msg("user deactivation failed")
		return models.User{}, fmt.Errorf("user deactivation failed: %w", err)
	}

	log.Info().Int64("user_id", userID).Int64("admin_id", adminID).Msg("user deactivated")
	return user, nil
}

// ReactivateUser restores a deactivated account. Accounts that were never
// approved cannot be reactivated; they go through approval.
func (u *userService) ReactivateUser(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	existing, err := u.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}
	if !existing.IsVerified {
		return models.User{}, ErrNotYetApproved
	}
	if existing.IsActive {
		return models.User{}, ErrAlreadyActive
	}

	user, err := u.userRepository.SetUserActive(ctx, userID, true)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Lost a race with another reactivation.
			return models.User{}, ErrAlreadyActive
		}
		log.Err(err).Int64("user_id", userID).Msg("user reactivation failed")
		return models.User{}, fmt.Errorf("user reactivation failed: %w", err)
	}

	log.Info().Int64("user_id", userID).Msg("user reactivated")
	return user, nil
}
