package middleware

import (
	"context"
	"net/http"
	"strings"

	"clinicstock/internal/domain"
	apperror "clinicstock/internal/errors"
	"clinicstock/internal/pkg/logger"
	"clinicstock/internal/pkg/response"
	"clinicstock/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto deste pacote.
type ContextKey int

const (
	PrincipalKey ContextKey = iota
	RequestIDKey
)

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewAuthMiddleware valida o JWT do header Authorization e anexa o domain.Principal ao contexto.
func NewAuthMiddleware(tokenSvc TokenService, log logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") || len(authHeader) <= len("Bearer ") {
				response.Error(w, r, log, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado."))
				return
			}

			claims, err := tokenSvc.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				log.Debug("Token rejeitado", map[string]interface{}{"path": r.URL.Path, "reason": err.Error()})
				response.Error(w, r, log, apperror.NewUnauthorizedError("Token inválido ou expirado."))
				return
			}

			principal := domain.Principal{UserID: claims.UserID, StaffID: claims.StaffID}
			for _, role := range claims.Roles {
				principal.Roles = append(principal.Roles, domain.UserRole(role))
			}

			ctx := WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithPrincipal anexa o principal ao contexto.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

// PrincipalFromContext extrai o principal anexado pelo NewAuthMiddleware.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(domain.Principal)
	return p, ok
}

// RequireRoles libera a rota apenas para principais com ao menos um dos papéis.
func RequireRoles(log logger.Logger, roles ...domain.UserRole) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				response.Error(w, r, log, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."))
				return
			}
			if !principal.HasAnyRole(roles...) {
				log.Warn("Acesso negado", map[string]interface{}{
					"user_id": principal.UserID,
					"path":    r.URL.Path,
				})
				response.Error(w, r, log, apperror.NewForbiddenError("Você não tem a permissão necessária."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
