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

// credentialService is the concrete implementation of CredentialService. It
// is the only component that holds the secret cipher: passwords are sealed
// on the way into the repository and opened only on the single-credential
// retrieval path. List responses carry presence booleans, never plaintext.
type credentialService struct {
	credentialRepository store.CredentialRepository
	cipher               crypto.SecretCipher
	logger               *logger.Logger

	// now stamps last_rotated_at; tests substitute a fixed clock.
	now func() time.Time
}

// NewCredentialService constructs a CredentialService wired to the given
// repository and cipher.
func NewCredentialService(credentialRepository store.CredentialRepository, cipher crypto.SecretCipher, logger *logger.Logger) CredentialService {
	return &credentialService{
		credentialRepository: credentialRepository,
		cipher:               cipher,
		logger:               logger,
		now:                  time.Now,
	}
}

// stripSecrets clears the stored ciphertext, IV and key material from a
// credential before it leaves the service on a non-retrieval path.
func stripSecrets(c models.Credential) models.Credential {
	c.EncryptedPassword = ""
	c.EncryptionIV = ""
	c.SSHKey = ""
	return c
}

// CreateCredential encrypts the password under a fresh IV and stores the
// credential. The returned record has its secret fields cleared.
func (s *credentialService) CreateCredential(ctx context.Context, req models.CreateCredentialRequest, createdBy int64) (models.Credential, error) {
	log := logger.FromContext(ctx)

	if req.ResourceID <= 0 {
		return models.Credential{}, fmt.Errorf("%w: resource_id is required", ErrValidation)
	}
	if !req.Type.Valid() {
		return models.Credential{}, fmt.Errorf("%w: unknown credential type %q", ErrValidation, req.Type)
	}
	if req.Password == "" {
		return models.Credential{}, fmt.Errorf("%w: password is required", ErrValidation)
	}
	expiresAt, err := parseExpiresAt(req.ExpiresAt)
	if err != nil {
		return models.Credential{}, err
	}

	ciphertext, iv, err := s.cipher.Encrypt(req.Password)
	if err != nil {
		log.Err(err).Int64("resource_id", req.ResourceID).Msg("password encryption failed")
		return models.Credential{}, fmt.Errorf("password encryption failed: %w", err)
	}

	credential, err := s.credentialRepository.CreateCredential(ctx, models.Credential{
		ResourceID:        req.ResourceID,
		Type:              req.Type,
		Username:          req.Username,
		EncryptedPassword: ciphertext,
		EncryptionIV:      iv,
		SSHKey:            req.SSHKey,
		Notes:             req.Notes,
		ExpiresAt:         expiresAt,
		LastRotatedAt:     s.now(),
		CreatedBy:         &createdBy,
	})
	if err != nil {
		log.Err(err).Int64("resource_id", req.ResourceID).Msg("credential creation failed")
		return models.Credential{}, fmt.Errorf("credential creation failed: %w", err)
	}

	log.Info().Int64("credential_id", credential.ID).Int64("resource_id", credential.ResourceID).Msg("credential created")
	return stripSecrets(credential), nil
}

// GetCredential retrieves one credential and decrypts its password. This is
// the only path that ever returns plaintext secrets; every access is logged.
func (s *credentialService) GetCredential(ctx context.Context, credentialID int64) (models.CredentialSecret, error) {
	log := logger.FromContext(ctx)

	credential, err := s.credentialRepository.GetCredentialByID(ctx, credentialID)
	if err != nil {
		return models.CredentialSecret{}, fmt.Errorf("credential lookup failed: %w", err)
	}

	password, err := s.cipher.Decrypt(credential.EncryptedPassword, credential.EncryptionIV)
	if err != nil {
		log.Err(err).Int64("credential_id", credentialID).Msg("password decryption failed")
		return models.CredentialSecret{}, fmt.Errorf("password decryption failed: %w", err)
	}

	log.Info().Int64("credential_id", credentialID).Msg("credential secret accessed")

	sshKey := credential.SSHKey
	return models.CredentialSecret{
		Credential: stripSecrets(credential),
		Password:   password,
		SSHKey:     sshKey,
	}, nil
}

// ListCredentials returns one page of credential summaries, optionally
// filtered by client. Summaries carry presence booleans in place of
// secrets; nothing on this path touches the cipher.
func (s *credentialService) ListCredentials(ctx context.Context, clientID *int64, page, limit int) ([]models.CredentialSummary, models.Pagination, error) {
	page, limit = normalizePage(page, limit)

	credentials, err := s.credentialRepository.ListCredentials(ctx, clientID, limit, (page-1)*limit)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("listing credentials failed: %w", err)
	}

	total, err := s.credentialRepository.CountCredentials(ctx, clientID)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("counting credentials failed: %w", err)
	}

	return credentials, buildPagination(page, limit, total), nil
}

// UpdateCredential applies a partial update. A non-nil password rotates the
// stored secret: the plaintext is re-encrypted under a fresh IV and
// last_rotated_at is refreshed, all in the same write.
func (s *credentialService) UpdateCredential(ctx context.Context, credentialID int64, patch models.UpdateCredentialRequest) (models.Credential, error) {
	log := logger.FromContext(ctx)

	var update store.CredentialUpdate

	if patch.Type != nil {
		if !patch.Type.Valid() {
			return models.Credential{}, fmt.Errorf("%w: unknown credential type %q", ErrValidation, *patch.Type)
		}
		update.Type = patch.Type
	}
	update.Username = patch.Username
	update.SSHKey = patch.SSHKey
	update.Notes = patch.Notes

	if patch.ExpiresAt != nil {
		// An explicit empty string removes the expiry; absence leaves it
		// untouched.
		if *patch.ExpiresAt == "" {
			update.ClearExpiresAt = true
		} else {
			expiresAt, err := parseExpiresAt(patch.ExpiresAt)
			if err != nil {
				return models.Credential{}, err
			}
			update.ExpiresAt = expiresAt
		}
	}

	if patch.Password != nil {
		if *patch.Password == "" {
			return models.Credential{}, fmt.Errorf("%w: password cannot be empty", ErrValidation)
		}
		ciphertext, iv, err := s.cipher.Encrypt(*patch.Password)
		if err != nil {
			log.Err(err).Int64("credential_id", credentialID).Msg("password encryption failed")
			return models.Credential{}, fmt.Errorf("password encryption failed: %w", err)
		}
		rotatedAt := s.now()
		update.EncryptedPassword = &ciphertext
		update.EncryptionIV = &iv
		update.LastRotatedAt = &rotatedAt
	}

	if err := s.credentialRepository.UpdateCredential(ctx, credentialID, update); err != nil {
		if errors.Is(err, store.ErrBuildingSQLQuery) {
			return models.Credential{}, fmt.Errorf("%w: no fields to update", ErrValidation)
		}
		log.Err(err).Int64("credential_id", credentialID).Msg("credential update failed")
		return models.Credential{}, fmt.Errorf("credential update failed: %w", err)
	}

	credential, err := s.credentialRepository.GetCredentialByID(ctx, credentialID)
	if err != nil {
		return models.Credential{}, fmt.Errorf("credential lookup failed: %w", err)
	}

	if patch.Password != nil {
		log.Info().Int64("credential_id", credentialID).Msg("credential password rotated")
	} else {
		log.Info().Int64("credential_id", credentialID).Msg("credential updated")
	}
	return stripSecrets(credential), nil
}

// DeleteCredential soft-deletes a credential; the ciphertext stays in the
// row for audit history.
func (s *credentialService) DeleteCredential(ctx context.Context, credentialID int64) error {
	log := logger.FromContext(ctx)

	if err := s.credentialRepository.SoftDeleteCredential(ctx, credentialID); err != nil {
		return fmt.Errorf("credential deletion failed: %w", err)
	}

	log.Info().Int64("credential_id", credentialID).Msg("credential deleted")
	return nil
}
