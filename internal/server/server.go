// Package server is the HTTP transport around the verification pipeline:
// upload handling, request validation and auth. The pipeline itself lives in
// pkg/verify.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"labelcheck/internal/config"
	"labelcheck/internal/logger"
	"labelcheck/pkg/verify"
)

// Server wires the HTTP routes to the verifier and the user store.
type Server struct {
	cfg      *config.Config
	db       *gorm.DB
	verifier *verify.Verifier
	secret   []byte
	log      zerolog.Logger
}

func New(cfg *config.Config, db *gorm.DB, verifier *verify.Verifier) *Server {
	return &Server{
		cfg:      cfg,
		db:       db,
		verifier: verifier,
		secret:   []byte(cfg.Auth.JWTSecret),
		log:      logger.WithComponent("server"),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = s.cfg.Server.MaxUploadMB << 20

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/register", s.registerHandler)
	r.POST("/login", s.loginHandler)
	r.POST("/refresh", s.refreshHandler)
	r.POST("/revoke_refresh", s.revokeRefreshHandler)

	authGroup := r.Group("")
	authGroup.Use(s.jwtAuthMiddleware())
	authGroup.POST("/verify", s.verifyHandler)
	return r
}

// Run serves HTTP on the configured address until the listener fails.
func (s *Server) Run() error {
	return s.Router().Run(s.cfg.Server.Addr)
}
