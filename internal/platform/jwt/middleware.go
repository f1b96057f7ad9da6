package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"feed_backend/internal/api"
	"feed_backend/internal/feature/auth/domain/entity"
)

// ContextIdentity is the gin context key holding the resolved *entity.User.
const ContextIdentity = "identity"

// ContextUserID is the gin context key holding the caller's user ID.
const ContextUserID = "userID"

// Gate failures. All of them produce the same 401 response; they are kept
// apart for logs only.
var (
	ErrMissingCredential = errors.New("missing bearer credential")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrStaleCredential   = errors.New("credential refers to an unknown user")
)

// TokenVerifier verifies a token and returns the user ID it asserts.
type TokenVerifier interface {
	ParseToken(tokenStr string) (uint, error)
}

// UserFinder loads the user a token refers to.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// NotFoundChecker reports whether err means the user does not exist.
type NotFoundChecker func(err error) bool

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying user.
func WithIdentity(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, identityKey{}, user)
}

// IdentityFromContext returns the user attached by AuthRequired.
func IdentityFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(identityKey{}).(*entity.User)
	return user, ok && user != nil
}

// Identity returns the user attached to c by AuthRequired.
func Identity(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok && user != nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}

// resolve turns an Authorization header into the calling user.
func resolve(ctx context.Context, header string, verifier TokenVerifier, users UserFinder, isNotFound NotFoundChecker) (*entity.User, error) {
	tokenStr, ok := bearerToken(header)
	if !ok {
		return nil, ErrMissingCredential
	}
	userID, err := verifier.ParseToken(tokenStr)
	if err != nil {
		return nil, errors.Join(ErrInvalidCredential, err)
	}
	user, err := users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrStaleCredential
		}
		return nil, err
	}
	return user, nil
}

// AuthRequired returns a Gin middleware that resolves the bearer token into
// the calling user and rejects the request otherwise.
func AuthRequired(verifier TokenVerifier, users UserFinder, isNotFound NotFoundChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolve(c.Request.Context(), c.GetHeader("Authorization"), verifier, users, isNotFound)
		if err != nil {
			switch {
			case errors.Is(err, ErrMissingCredential), errors.Is(err, ErrInvalidCredential), errors.Is(err, ErrStaleCredential):
				slog.Warn("request unauthenticated", "reason", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
				c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
			default:
				slog.Error("identity lookup failed", "error", err, "path", c.FullPath())
				c.AbortWithStatusJSON(http.StatusInternalServerError, api.InternalError)
			}
			return
		}

		c.Set(ContextIdentity, user)
		c.Set(ContextUserID, user.ID)
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), user))
		c.Next()
	}
}
