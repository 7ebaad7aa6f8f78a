package service

import (
	"github.com/mfedotov/credvault/internal/config"
	"github.com/mfedotov/credvault/internal/crypto"
	"github.com/mfedotov/credvault/internal/logger"
	"github.com/mfedotov/credvault/internal/store"
)

// Services bundles every service the HTTP layer depends on.
type Services struct {
	AuthService       AuthService
	TokenService      TokenService
	UserService       UserService
	ClientService     ClientService
	ResourceService   ResourceService
	CredentialService CredentialService
}

// NewServices wires all services over the given storages and crypto
// primitives.
func NewServices(storages *store.Storages, cipher crypto.SecretCipher, hasher crypto.PasswordHasher, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	tokens := NewTokenService(cfg.App)
	return &Services{
		AuthService:       NewAuthService(storages.Users, hasher, tokens, logger),
		TokenService:      tokens,
		UserService:       NewUserService(storages.Users, hasher, logger),
		ClientService:     NewClientService(storages.Clients, logger),
		ResourceService:   NewResourceService(storages.Resources, logger),
		CredentialService: NewCredentialService(storages.Credentials, cipher, logger),
	}
}
