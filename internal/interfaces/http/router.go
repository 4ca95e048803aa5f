package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	inviteUsecases "autocrm/internal/application/invite/usecases"
	"autocrm/internal/application/ticket/services"
	ticketUsecases "autocrm/internal/application/ticket/usecases"
	userUsecases "autocrm/internal/application/user/usecases"
	"autocrm/internal/domain/shared/events"
	"autocrm/internal/domain/ticket"
	"autocrm/internal/infrastructure/auth"
	"autocrm/internal/infrastructure/config"
	"autocrm/internal/infrastructure/email"
	"autocrm/internal/infrastructure/permission"
	"autocrm/internal/infrastructure/pubsub"
	"autocrm/internal/infrastructure/ratelimit"
	"autocrm/internal/infrastructure/repository"
	"autocrm/internal/infrastructure/storage"
	"autocrm/internal/interfaces/http/handlers"
	tickethandlers "autocrm/internal/interfaces/http/handlers/ticket"
	"autocrm/internal/interfaces/http/middleware"
	"autocrm/internal/interfaces/http/routes"
	"autocrm/internal/shared/db"
	"autocrm/internal/shared/logger"
)

// Deps carries the process-owned resources the router wires handlers onto.
// The caller owns their lifecycles; the router only borrows them.
type Deps struct {
	DB              *gorm.DB
	FeedBus         *pubsub.RedisTicketFeedBus
	Feed            *services.TicketFeed
	EventDispatcher events.EventDispatcher
	Enforcer        *permission.Enforcer
	EmailService    email.Service
	RateLimiter     ratelimit.RateLimiter // nil disables rate limiting
	Config          *config.Config
	Logger          logger.Interface
}

// Router holds the gin engine and the wired handlers.
type Router struct {
	engine *gin.Engine

	authHandler       *handlers.AuthHandler
	inviteHandler     *handlers.InviteHandler
	ticketHandler     *tickethandlers.TicketHandler
	attachmentHandler *tickethandlers.AttachmentHandler
	streamHandler     *handlers.StreamHandler

	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimitMiddleware

	cfg    *config.Config
	logger logger.Interface
}

// NewRouter builds the repository, use case, and handler graph on top of the
// shared resources in deps.
func NewRouter(deps *Deps) (*Router, error) {
	engine := gin.New()
	cfg := deps.Config
	log := deps.Logger

	userRepo := repository.NewUserRepository(deps.DB)
	orgRepo := repository.NewOrganizationRepository(deps.DB)
	inviteRepo := repository.NewInviteRepository(deps.DB)
	ticketRepo := repository.NewTicketRepository(deps.DB)
	messageRepo := repository.NewMessageRepository(deps.DB)
	attachmentRepo := repository.NewAttachmentRepository(deps.DB)

	txManager := db.NewTransactionManager(deps.DB)

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)

	blobStore, err := storage.NewLocalBlobStore(cfg.Storage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob store: %w", err)
	}

	urlSigner, err := storage.NewURLSigner(
		cfg.Storage.SigningSecret,
		cfg.Server.BaseURL,
		time.Duration(cfg.Storage.URLTTLMinutes)*time.Minute,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create url signer: %w", err)
	}

	numberGen := ticket.NewDefaultNumberGenerator()

	registerUC := userUsecases.NewRegisterUseCase(userRepo, orgRepo, hasher, jwtService, txManager, log)
	loginUC := userUsecases.NewLoginUseCase(userRepo, hasher, jwtService, log)
	refreshUC := userUsecases.NewRefreshTokenUseCase(jwtService, log)
	profileUC := userUsecases.NewGetProfileUseCase(userRepo, orgRepo, log)

	createInviteUC := inviteUsecases.NewCreateInviteUseCase(
		inviteRepo, userRepo, orgRepo, deps.EmailService, cfg.Invite.ExpiryHours, log)
	checkInviteUC := inviteUsecases.NewCheckInviteUseCase(inviteRepo, log)
	acceptInviteUC := inviteUsecases.NewAcceptInviteUseCase(inviteRepo, userRepo, hasher, txManager, log)

	createTicketUC := ticketUsecases.NewCreateTicketUseCase(ticketRepo, numberGen, deps.FeedBus, log)
	getTicketUC := ticketUsecases.NewGetTicketUseCase(ticketRepo, messageRepo, attachmentRepo, log)
	listTicketsUC := ticketUsecases.NewListTicketsUseCase(ticketRepo, log)
	updateTicketUC := ticketUsecases.NewUpdateTicketUseCase(ticketRepo, deps.FeedBus, log)
	changeStatusUC := ticketUsecases.NewChangeStatusUseCase(ticketRepo, deps.EventDispatcher, deps.FeedBus, log)
	changePriorityUC := ticketUsecases.NewChangePriorityUseCase(ticketRepo, deps.EventDispatcher, deps.FeedBus, log)
	changeCategoryUC := ticketUsecases.NewChangeCategoryUseCase(ticketRepo, deps.FeedBus, log)
	assignTicketUC := ticketUsecases.NewAssignTicketUseCase(ticketRepo, userRepo, deps.EventDispatcher, deps.FeedBus, log)
	addMessageUC := ticketUsecases.NewAddMessageUseCase(ticketRepo, messageRepo, deps.EventDispatcher, deps.FeedBus, log)
	deleteTicketUC := ticketUsecases.NewDeleteTicketUseCase(
		ticketRepo, messageRepo, attachmentRepo, blobStore, txManager, deps.EventDispatcher, deps.FeedBus, log)
	statsUC := ticketUsecases.NewGetTicketStatsUseCase(ticketRepo, log)

	addAttachmentUC := ticketUsecases.NewAddAttachmentUseCase(ticketRepo, attachmentRepo, blobStore, log)
	attachmentURLUC := ticketUsecases.NewGetAttachmentURLUseCase(ticketRepo, attachmentRepo, urlSigner, log)
	downloadUC := ticketUsecases.NewDownloadAttachmentUseCase(attachmentRepo, blobStore, urlSigner, log)

	maxUploadBytes := int64(cfg.Storage.MaxUploadMB) << 20

	router := &Router{
		engine: engine,
		authHandler: handlers.NewAuthHandler(
			registerUC, loginUC, refreshUC, profileUC, log),
		inviteHandler: handlers.NewInviteHandler(
			createInviteUC, checkInviteUC, acceptInviteUC, log),
		ticketHandler: tickethandlers.NewTicketHandler(
			createTicketUC, getTicketUC, listTicketsUC, updateTicketUC,
			changeStatusUC, changePriorityUC, changeCategoryUC, assignTicketUC,
			addMessageUC, deleteTicketUC, statsUC, log),
		attachmentHandler: tickethandlers.NewAttachmentHandler(
			addAttachmentUC, getTicketUC, attachmentURLUC, downloadUC, maxUploadBytes, log),
		streamHandler: handlers.NewStreamHandler(deps.Feed, log),

		authMiddleware:       middleware.NewAuthMiddleware(jwtService, log),
		permissionMiddleware: middleware.NewPermissionMiddleware(deps.Enforcer, log),

		cfg:    cfg,
		logger: log,
	}

	if deps.RateLimiter != nil {
		router.rateLimiter = middleware.NewRateLimitMiddleware(deps.RateLimiter)
	}

	return router, nil
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler:    r.authHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimiter:    r.rateLimiter,
	})

	routes.SetupInviteRoutes(r.engine, &routes.InviteRouteConfig{
		InviteHandler:        r.inviteHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		RateLimiter:          r.rateLimiter,
	})

	routes.SetupTicketRoutes(r.engine, &routes.TicketRouteConfig{
		TicketHandler:        r.ticketHandler,
		AttachmentHandler:    r.attachmentHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupStreamRoutes(r.engine, &routes.StreamRouteConfig{
		StreamHandler:  r.streamHandler,
		AuthMiddleware: r.authMiddleware,
	})
}

// GetEngine returns the gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
