package http

import (
	"context"
	"net/http"

	"github.com/mfedotov/credvault/internal/logger"
	"github.com/mfedotov/credvault/internal/service"
	"github.com/mfedotov/credvault/internal/utils"
	"github.com/mfedotov/credvault/models"
)

// authenticate is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, verifies it
// via [service.TokenService.ParseToken], and then re-resolves the account
// against persistence so a deactivated user is locked out immediately, not
// at token expiry. On success the live user record is stored in the request
// context under [utils.PrincipalCtxKey].
//
// The middleware rejects requests with HTTP 401 Unauthorized when the
// header is absent or malformed, the token fails verification, the account
// no longer exists, or the account is deactivated or still pending
// approval. Role checks are a separate concern; see requireRole.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Err(ErrEmptyAuthorizationHeader).Send()
			respondError(w, service.ErrTokenInvalid)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(ErrInvalidAuthorizationHeader).Send()
			respondError(w, service.ErrTokenInvalid)
			return
		}

		token, err := h.services.TokenService.ParseToken(tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("token verification failed")
			respondError(w, err)
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.GetUser(ctx, token.Claims.UserID)
		if err != nil {
			log.Debug().Err(err).Int64("user_id", token.Claims.UserID).Msg("token principal not found")
			respondError(w, service.ErrTokenInvalid)
			return
		}
		if !user.IsActive || !user.IsVerified {
			log.Info().Int64("user_id", user.ID).Msg("request refused: account inactive")
			respondError(w, service.ErrAccountInactive)
			return
		}

		ctx = context.WithValue(ctx, utils.PrincipalCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole returns a middleware that admits only principals whose role
// is in the allowed set. It must run after authenticate.
func (h *Handler) requireRole(allowed ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := utils.GetPrincipalFromContext(r.Context())
			if !ok {
				respondError(w, service.ErrTokenInvalid)
				return
			}

			for _, role := range allowed {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.FromRequest(r).Info().
				Int64("user_id", user.ID).
				Str("role", string(user.Role)).
				Msg("request refused: insufficient role")
			_, _ = utils.WriteJSON(w, map[string]string{"error": ErrForbidden.Error()}, http.StatusForbidden)
		})
	}
}
