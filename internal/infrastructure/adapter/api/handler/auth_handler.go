package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/api/middleware"
)

// CookieSettings controls the auth cookie attributes
type CookieSettings struct {
	Secure bool
	MaxAge time.Duration
}

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	auth         usecase.AuthUseCase
	cookies      CookieSettings
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

func NewAuthHandler(auth usecase.AuthUseCase, cookies CookieSettings, timeProvider coreport.TimeProvider, logger coreport.Logger) *AuthHandler {
	if cookies.MaxAge <= 0 {
		cookies.MaxAge = 7 * 24 * time.Hour
	}
	return &AuthHandler{
		auth:         auth,
		cookies:      cookies,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// setCookie writes an httpOnly, SameSite=Strict cookie on path /. A negative maxAge deletes it.
func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, value, maxAge, "/", "", h.cookies.Secure, true)
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	user, err := h.auth.Register(c.Request.Context(), usecase.RegisterRequest{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "User registered successfully",
		User:    dto.FromUser(user),
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	result, err := h.auth.Login(c.Request.Context(), usecase.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	h.setCookie(c, middleware.AuthCookie, result.Tokens.JWT, int(h.cookies.MaxAge.Seconds()))
	c.JSON(http.StatusOK, loginResponse(result))
}

// BankerLogin handles POST /api/auth/banker-login
func (h *AuthHandler) BankerLogin(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	result, err := h.auth.BankerLogin(c.Request.Context(), usecase.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	h.setCookie(c, middleware.BankerAuthCookie, result.Tokens.JWT, int(h.cookies.MaxAge.Seconds()))
	c.JSON(http.StatusOK, loginResponse(result))
}

func loginResponse(result *usecase.LoginResult) dto.LoginResponse {
	resp := dto.LoginResponse{
		User: dto.FromUser(result.User),
		Tokens: dto.TokensResponse{
			JWT:         result.Tokens.JWT,
			AccessToken: result.Tokens.AccessToken,
			ExpiresAt:   result.Tokens.ExpiresAt,
		},
	}
	if result.Accounts != nil {
		resp.Accounts = dto.FromAccounts(result.Accounts)
	}
	return resp
}

// Logout handles POST and GET /api/auth/logout. It always succeeds and clears both cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.auth.Logout(c.Request.Context(), middleware.BearerToken(c))

	h.setCookie(c, middleware.AuthCookie, "", -1)
	h.setCookie(c, middleware.BankerAuthCookie, "", -1)
	c.JSON(http.StatusOK, dto.LogoutResponse{
		Message:   "Logged out successfully",
		Timestamp: h.timeProvider.Now(),
	})
}

// LogoutAll handles POST /api/auth/logout-all
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		middleware.AbortWithError(c, h.logger, errs.ErrNoAuthToken)
		return
	}

	revoked, err := h.auth.LogoutAll(c.Request.Context(), principal)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	h.setCookie(c, middleware.AuthCookie, "", -1)
	h.setCookie(c, middleware.BankerAuthCookie, "", -1)
	c.JSON(http.StatusOK, dto.LogoutAllResponse{
		Message: "All sessions revoked",
		Revoked: revoked,
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		middleware.AbortWithError(c, h.logger, errs.ErrNoAuthToken)
		return
	}

	user, err := h.auth.CurrentUser(c.Request.Context(), principal)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.MeResponse{User: dto.FromUser(user)})
}
