package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"barangayhub/api/internal/config"
	"barangayhub/api/internal/middleware"
	"barangayhub/api/internal/models"
	"barangayhub/api/internal/security"
	"barangayhub/api/internal/service"
	"barangayhub/api/internal/store"
)

type HandlerSet struct {
	log       zerolog.Logger
	cfg       *config.AppConfig
	accounts  *service.AccountService
	officials *service.OfficialService
	tokens    *security.TokenManager
	backend   store.Backend
}

func NewHandlerSet(log zerolog.Logger, backend store.Backend, tokens *security.TokenManager, cfg *config.AppConfig) HandlerSet {
	accounts := service.NewAccountService(backend.Users(), backend.Admins(), tokens, log)
	officials := service.NewOfficialService(backend.Officials(), log)

	return HandlerSet{
		log:       log,
		cfg:       cfg,
		accounts:  accounts,
		officials: officials,
		tokens:    tokens,
		backend:   backend,
	}
}

func (h HandlerSet) Register(router *gin.Engine) {
	router.GET("/health", h.Health)
	router.GET("/status", h.Status)

	auth := router.Group("/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)
	auth.POST("/profile", middleware.Auth(h.tokens), h.Profile)

	admin := router.Group("/admin")
	admin.POST("/login", h.AdminLogin)
	admin.GET("/officials", h.ListOfficials)

	guarded := admin.Group("")
	guarded.Use(
		middleware.Auth(h.tokens),
		middleware.RequireRole(models.RoleAdmin),
	)
	guarded.POST("/logout", h.AdminLogout)
	guarded.GET("/users", h.ListUsers)
	guarded.DELETE("/users/:id", h.DeleteUser)
	guarded.POST("/officials", h.AddOfficial)
	guarded.DELETE("/officials/:id", h.DeleteOfficial)
}

// fail maps service and store errors to status codes. Unexpected errors
// are logged and answered with a generic 500; the underlying message never
// reaches the client.
func (h HandlerSet) fail(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		h.log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
