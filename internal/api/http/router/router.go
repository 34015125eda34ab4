package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/baasproxy/internal/api/http/handler"
	"github.com/dtroode/baasproxy/internal/api/http/middleware"
	"github.com/dtroode/baasproxy/internal/logger"
	"github.com/dtroode/baasproxy/internal/model"
)

// Router represents an HTTP router for proxy operations.
// It wires handlers and middleware onto a gin engine.
type Router struct {
	authService     handler.AuthService
	profileService  handler.ProfileService
	documentService handler.DocumentService
	tokenService    middleware.TokenService
	limiter         model.SignInLimiter
	contextManager  model.ContextManager
	logger          *logger.Logger
	trustedProxies  []string
	maxBodyBytes    int64
}

const defaultMaxBodyBytes = 1 << 20

// New creates new HTTP Router instance.
//
// Parameters:
//   - authService: The sign-in and sign-up service
//   - profileService: The profile service
//   - documentService: The generic document service
//   - tokenService: Verifies bearer tokens on protected routes
//   - limiter: Bounds auth attempts per client IP, nil disables limiting
//   - contextManager: Carries the verified caller through the request context
//   - logger: The logger for request logging
//
// Returns a pointer to the newly created Router instance.
func New(
	authService handler.AuthService,
	profileService handler.ProfileService,
	documentService handler.DocumentService,
	tokenService middleware.TokenService,
	limiter model.SignInLimiter,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:     authService,
		profileService:  profileService,
		documentService: documentService,
		tokenService:    tokenService,
		limiter:         limiter,
		contextManager:  contextManager,
		logger:          logger,
		maxBodyBytes:    defaultMaxBodyBytes,
	}
}

// WithTrustedProxies sets the proxies whose forwarding headers are believed
// when resolving the client IP. Without it only the socket peer counts.
func (r *Router) WithTrustedProxies(proxies []string) *Router {
	r.trustedProxies = proxies
	return r
}

// WithMaxBodyBytes caps request bodies. Zero or less removes the cap.
func (r *Router) WithMaxBodyBytes(n int64) *Router {
	r.maxBodyBytes = n
	return r
}

// Register builds the engine with request id, logging and recovery
// middleware, public auth routes and token-protected routes.
func (r *Router) Register() *gin.Engine {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)
	rateLimit := middleware.NewRateLimit(r.limiter, r.logger)

	engine := gin.New()
	if err := engine.SetTrustedProxies(r.trustedProxies); err != nil {
		r.logger.Error("Router: invalid trusted proxies, forwarding headers ignored",
			"proxies", r.trustedProxies,
			"error", err.Error())
		_ = engine.SetTrustedProxies(nil)
	}
	engine.Use(middleware.RequestID(), logging.Handle, gin.Recovery(), middleware.NewBodyLimit(r.maxBodyBytes).Handle)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.registerAuthRoutes(engine.Group("/api/auth", rateLimit.Handle))

	protected := engine.Group("/api", authenticate.Handle)
	r.registerProfileRoutes(protected.Group("/user"))
	r.registerDocumentRoutes(protected.Group("/data"))

	return engine
}

func (r *Router) registerAuthRoutes(group *gin.RouterGroup) {
	authHandler := handler.NewAuth(r.authService, r.logger)
	group.POST("/signin", authHandler.SignIn)
	group.POST("/signup", authHandler.SignUp)
}

func (r *Router) registerProfileRoutes(group *gin.RouterGroup) {
	profileHandler := handler.NewProfile(r.profileService, r.contextManager, r.logger)
	group.GET("/profile", profileHandler.Get)
	group.PUT("/profile", profileHandler.Update)
}

func (r *Router) registerDocumentRoutes(group *gin.RouterGroup) {
	documentHandler := handler.NewDocument(r.documentService, r.logger)
	group.GET("/crud", documentHandler.Get)
	group.POST("/crud", documentHandler.Create)
	group.PUT("/crud", documentHandler.Update)
	group.DELETE("/crud", documentHandler.Delete)
}
