package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gofrs/uuid/v5"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/golang-jwt/jwt/v5/request"

	"github.com/rankforge/audit-service/internal/entity"
	"github.com/rankforge/audit-service/pkg/config"
	"github.com/rankforge/audit-service/pkg/logger"
)

type Middleware struct {
	cfg config.Config
}

func NewMiddleware(cfg config.Config) *Middleware {
	return &Middleware{
		cfg: cfg,
	}
}

func (m *Middleware) Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.WithRequestID(r.Context(), uuid.Must(uuid.NewV4()).String())

		slog.InfoContext(ctx, "incoming request", "method", r.Method, "url", r.URL.String(), "user_ip", r.RemoteAddr)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func(ctx context.Context) {
			err := recover()
			if err != nil {
				slog.ErrorContext(ctx, "panic", "error", err, "stack", string(debug.Stack()))
			}
		}(r.Context())
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) Cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Origin, Accept, User-Agent, Cache-Control")

		if r.Method == http.MethodOptions {
			return
		}

		next.ServeHTTP(w, r)
	})
}

// identityClaims is the token payload issued by the identity service. Agency
// and client bindings are optional; scope resolution downstream decides
// whether the role actually requires them.
type identityClaims struct {
	UserID    uuid.UUID   `json:"userId"`
	Role      string      `json:"role"`
	TenantID  uuid.UUID   `json:"tenantId"`
	AgencyID  uuid.UUID   `json:"agencyId"`
	ClientID  uuid.UUID   `json:"clientId"`
	ClientIDs []uuid.UUID `json:"clientIds"`
	jwt.RegisteredClaims
}

func (m *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		accessToken, err := request.BearerExtractor{}.ExtractToken(r)
		if err != nil {
			SendErr(ctx, w, http.StatusUnauthorized, err, "missing bearer token")
			return
		}

		var claims identityClaims

		token, err := jwt.ParseWithClaims(accessToken, &claims, func(token *jwt.Token) (any, error) {
			_, ok := token.Method.(*jwt.SigningMethodHMAC)
			if !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}

			return []byte(m.cfg.Auth.JWTSecret), nil
		})
		if err != nil {
			SendErr(ctx, w, http.StatusUnauthorized, err, "invalid access token")
			return
		}

		if !token.Valid {
			SendErr(ctx, w, http.StatusUnauthorized, entity.ErrUnauthenticated, "invalid access token")
			return
		}

		identity := entity.Identity{
			UserID:    claims.UserID,
			Role:      entity.Role(claims.Role),
			TenantID:  claims.TenantID,
			AgencyID:  claims.AgencyID,
			ClientID:  claims.ClientID,
			ClientIDs: claims.ClientIDs,
		}

		err = identity.Role.Validate()
		if err != nil {
			SendErr(ctx, w, http.StatusUnauthorized, err, "invalid access token")
			return
		}

		ctx = logger.WithUserID(ctx, identity.UserID)
		ctx = entity.CtxWithIdentity(ctx, identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
