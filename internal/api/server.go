package api

import (
	"context"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/km-silat/km-silat-api/docs"
	v1 "github.com/km-silat/km-silat-api/internal/api/handler/v1"
	"github.com/km-silat/km-silat-api/internal/api/middleware"
	"github.com/km-silat/km-silat-api/internal/config"
	"github.com/km-silat/km-silat-api/internal/domain"
	"github.com/km-silat/km-silat-api/internal/repository"
	"github.com/km-silat/km-silat-api/internal/repository/dao"
	"github.com/km-silat/km-silat-api/internal/service"
)

const basePath = "/api/v1"

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	hub *v1.CommentHub
}

type handlers struct {
	auth          *v1.AuthHandler
	user          *v1.UserHandler
	member        *v1.MemberHandler
	schedule      *v1.ScheduleHandler
	roadmap       *v1.RoadmapHandler
	comment       *v1.CommentHandler
	commentStream *v1.CommentStreamHandler
	stats         *v1.StatsHandler
	health        *v1.HealthHandler
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		hub:    v1.NewCommentHub(),
	}

	s.MountMiddlewares()
	s.MountHandlers(s.initHandlers(db))

	return s
}

// Run starts the background workers of the server until ctx is done.
func (s *Server) Run(ctx context.Context) {
	go s.hub.Run(ctx)
}

func (s *Server) initHandlers(db *gorm.DB) handlers {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	memberRepo := repository.NewMemberRepository(dao.NewMemberDAO(db))
	scheduleRepo := repository.NewScheduleRepository(dao.NewScheduleDAO(db))
	roadmapRepo := repository.NewRoadmapRepository(dao.NewRoadmapDAO(db))
	commentRepo := repository.NewCommentRepository(dao.NewCommentDAO(db))

	roadmapSvc := service.NewRoadmapService(roadmapRepo)
	commentSvc := service.NewCommentService(commentRepo, roadmapRepo, s.Config.API.AvatarBaseURL)

	return handlers{
		auth:          v1.NewAuthHandler(s.Config.API, service.NewAuthService(userRepo)),
		user:          v1.NewUserHandler(service.NewUserService(userRepo)),
		member:        v1.NewMemberHandler(service.NewMemberService(memberRepo)),
		schedule:      v1.NewScheduleHandler(service.NewScheduleService(scheduleRepo)),
		roadmap:       v1.NewRoadmapHandler(roadmapSvc),
		comment:       v1.NewCommentHandler(commentSvc, s.hub),
		commentStream: v1.NewCommentStreamHandler(s.hub, commentSvc, s.Config.API.AllowedCORSDomains),
		stats:         v1.NewStatsHandler(service.NewStatsService(memberRepo, roadmapRepo)),
		health:        v1.NewHealthHandler(roadmapSvc),
	}
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.RequestLogger())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	authn := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/login", h.auth.HandleLogin)

		public.GET("/stats", h.stats.HandleGetStats)
		public.GET("/db-health", h.health.HandleDBHealth)

		public.GET("/members", h.member.HandleListMembers)
		public.GET("/schedule", h.schedule.HandleListSchedule)

		// Literal segments sit next to the parametric ones; gin prefers the literal match.
		public.GET("/roadmap-categories", h.roadmap.HandleListRootCategories)
		public.GET("/roadmap-categories/slug/:slug", h.roadmap.HandleGetCategoryBySlug)
		public.GET("/roadmap-categories/:parentSlug/subcategories", h.roadmap.HandleListSubCategories)

		public.GET("/roadmaps/slug/:slug", h.roadmap.HandleListItemsByCategorySlug)
		public.GET("/roadmaps/:categoryIdOrSlug", h.roadmap.HandleListItemsByCategory)

		public.GET("/roadmap-items/:id", h.roadmap.HandleGetItem)
		public.GET("/roadmap-items/:id/comments", h.comment.HandleListComments)
		public.POST("/roadmap-items/:id/comments", h.comment.HandleCreateComment)
		public.GET("/roadmap-items/:id/comments/stream", h.commentStream.HandleCommentStream)

		public.POST("/comments/:id/like", h.comment.HandleToggleLike)
	}

	s.Router.Group(basePath, authn.OptionalJWT()).DELETE("/comments/:id", h.comment.HandleDeleteComment)

	admin := s.Router.Group(basePath, authn.VerifyJWT())
	{
		admin.POST("/members", h.member.HandleCreateMember)
		admin.PUT("/members/:id", h.member.HandleUpdateMember)
		admin.DELETE("/members/:id", h.member.HandleDeleteMember)
		admin.POST("/members/:id/championships", h.member.HandleAddChampionship)
		admin.PUT("/championships/:id", h.member.HandleUpdateChampionship)
		admin.DELETE("/championships/:id", h.member.HandleDeleteChampionship)

		admin.PUT("/schedule/:id", h.schedule.HandleUpdateSchedule)

		admin.POST("/roadmap-categories", h.roadmap.HandleCreateCategory)
		admin.PUT("/roadmap-categories/:id", h.roadmap.HandleUpdateCategory)
		admin.DELETE("/roadmap-categories/:id", h.roadmap.HandleDeleteCategory)

		admin.POST("/roadmap-items", h.roadmap.HandleCreateItem)
		admin.PUT("/roadmap-items/:id", h.roadmap.HandleUpdateItem)
		admin.DELETE("/roadmap-items/:id", h.roadmap.HandleDeleteItem)
	}

	users := s.Router.Group(basePath, authn.VerifyJWT(), middleware.RequireRole(domain.RoleAdmin))
	{
		users.GET("/users", h.user.HandleListUsers)
		users.GET("/users/:id", h.user.HandleGetUser)
		users.POST("/users", h.user.HandleCreateUser)
		users.PUT("/users/:id", h.user.HandleUpdateUser)
		users.DELETE("/users/:id", h.user.HandleDeleteUser)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "KM Silat API"
	docs.SwaggerInfo.Description = "Membership, training schedule and learning roadmap of the KM Silat club."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
