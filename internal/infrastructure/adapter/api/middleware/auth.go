package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/usecase"
)

// Cookie names of the signed session token
const (
	AuthCookie       = "auth-token"
	BankerAuthCookie = "banker-auth-token"
)

const principalKey = "principal"

// Credentials extracts the signed cookie token and the bearer access token from a request
func Credentials(c *gin.Context) usecase.Credentials {
	var creds usecase.Credentials
	if v, err := c.Cookie(AuthCookie); err == nil && v != "" {
		creds.SignedToken = v
	} else if v, err := c.Cookie(BankerAuthCookie); err == nil {
		creds.SignedToken = v
	}
	creds.AccessToken = BearerToken(c)
	return creds
}

// BearerToken returns the Authorization header value with the Bearer prefix stripped
func BearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) >= 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// Authenticate rejects requests without a valid principal with 401 and stores the principal otherwise
func Authenticate(authenticator usecase.Authenticator, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := authenticator.Authenticate(c.Request.Context(), Credentials(c))
		if err != nil {
			AbortWithError(c, logger, err)
			return
		}
		c.Set(principalKey, *principal)
		c.Next()
	}
}

// RequireRoles rejects authenticated principals outside the allow-list with 403
func RequireRoles(logger coreport.Logger, roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			AbortWithError(c, logger, errs.ErrNoAuthToken)
			return
		}
		if !principal.HasAnyRole(roles...) {
			logger.Warn("Role not allowed", map[string]any{
				"user_id":    principal.UserID,
				"role":       string(principal.Role),
				"path":       c.FullPath(),
				"request_id": RequestIDFrom(c),
			})
			AbortWithError(c, logger, errs.ErrAccessDenied)
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by Authenticate
func PrincipalFrom(c *gin.Context) (entity.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return entity.Principal{}, false
	}
	principal, ok := v.(entity.Principal)
	return principal, ok
}
