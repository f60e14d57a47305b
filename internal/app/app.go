package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"skillpath_backend/internal/config"
	"skillpath_backend/internal/controller"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/configwatcher"
	"skillpath_backend/pkg/database"
	"skillpath_backend/pkg/llm"
	"skillpath_backend/pkg/logger"
	"skillpath_backend/pkg/monitoring"
	"skillpath_backend/pkg/security"
	"skillpath_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config    *config.Config
	ConfigDir string
	Router    *gin.Engine
	DB        *gorm.DB
	Redis     *redis.Client
	Generator llm.Generator

	services        *services
	shutdownTracer  func(context.Context) error
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

// Deps are the collaborators NewApp builds from config; tests pass their own.
type Deps struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Generator llm.Generator
	Storage   service.StorageProvider
	Lock      service.GenerationLock
}

type repositories struct {
	user         *repository.UserRepository
	employee     *repository.EmployeeRepository
	catalog      *repository.CatalogRepository
	assessment   *repository.AssessmentRepository
	progress     *repository.ProgressRepository
	learningPath *repository.LearningPathRepository
	event        *repository.LearningEventRepository
}

type services struct {
	auth         *service.AuthService
	employee     *service.EmployeeService
	event        *service.EventService
	profile      *service.ProfileService
	assessment   *service.AssessmentService
	learningPath *service.LearningPathService
	progress     *service.ProgressService
	dashboard    *service.DashboardService
	catalog      *service.CatalogService
	analytics    *service.AnalyticsService
}

type controllers struct {
	auth       *controller.AuthController
	employee   *controller.EmployeeController
	learner    *controller.LearnerController
	assessment *controller.AssessmentController
	content    *controller.ContentController
	analytics  *controller.AnalyticsController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()
	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		employee:     repository.NewEmployeeRepository(db),
		catalog:      repository.NewCatalogRepository(db),
		assessment:   repository.NewAssessmentRepository(db),
		progress:     repository.NewProgressRepository(db),
		learningPath: repository.NewLearningPathRepository(db),
		event:        repository.NewLearningEventRepository(db),
	}
}

func (a *App) initServices(repos *repositories, deps Deps) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, repos.employee, a.Config)
	s.employee = service.NewEmployeeService(repos.employee)
	s.event = service.NewEventService(repos.event)
	s.profile = service.NewProfileService(repos.catalog, deps.Generator)
	s.assessment = service.NewAssessmentService(deps.DB, repos.employee, repos.assessment, repos.catalog, deps.Generator, deps.Lock, s.event)
	s.learningPath = service.NewLearningPathService(repos.employee, repos.assessment, repos.catalog, repos.progress, repos.learningPath, deps.Lock, s.event)
	s.progress = service.NewProgressService(repos.employee, repos.assessment, repos.learningPath, repos.progress, repos.catalog, s.event)
	s.dashboard = service.NewDashboardService(s.employee, s.profile, s.learningPath, s.progress)
	s.catalog = service.NewCatalogService(repos.catalog, deps.Storage)
	s.analytics = service.NewAnalyticsService(repos.employee, repos.assessment, repos.progress)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		employee:   controller.NewEmployeeController(s.employee),
		learner:    controller.NewLearnerController(s.dashboard, s.learningPath, s.progress),
		assessment: controller.NewAssessmentController(s.assessment),
		content:    controller.NewContentController(s.catalog),
		analytics:  controller.NewAnalyticsController(s.analytics, s.event),
		health:     controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.RequestID())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	if cfg.RateLimit.MaxRequests > 0 {
		router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))
	}

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware(cfg.Tracing.ServiceName))
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New wires services, controllers and routes around already-built collaborators.
func New(cfg *config.Config, deps Deps) *App {
	if deps.Lock == nil {
		deps.Lock = service.NewGenerationLock(deps.Redis, cfg.Redis.LockTTL())
	}
	if deps.Storage == nil {
		deps.Storage = &service.LocalStorageProvider{Root: cfg.Storage.LocalPath}
	}

	app := &App{
		Config:    cfg,
		DB:        deps.DB,
		Redis:     deps.Redis,
		Generator: deps.Generator,
	}

	repos := app.initRepositories(deps.DB)
	app.services = app.initServices(repos, deps)
	controllers := app.initControllers(app.services)

	monitoring.Init()

	router := gin.Default()
	app.Router = router
	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(logger.SetLevel)
	app.RegisterConfigCallback(func(next *config.Config) {
		setter, ok := app.Generator.(llm.ModelSetter)
		if !ok || next.AI.Model == "" {
			return
		}
		setter.SetModel(next.AI.Model)
		logger.Log.Info("AI model updated", zap.String("model", next.AI.Model))
	})

	return app
}

// NewApp builds every collaborator from cfg. Unrecoverable start-up failures exit the process.
func NewApp(cfg *config.Config, configDir string) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式下默认跳过自动迁移，需显式 -migrate
	if cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		if err := database.SeedFromFile(db, cfg.Seed.Path); err != nil {
			logger.Log.Fatal("Failed to seed catalog", zap.Error(err))
		}
	}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
	}

	ctx := context.Background()
	generator, err := llm.New(ctx, cfg.AI)
	if err != nil {
		logger.Log.Fatal("Failed to initialize text generation", zap.Error(err))
	}

	var shutdownTracer func(context.Context) error
	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(ctx, &cfg.Tracing)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		shutdownTracer = tp.Shutdown
	}

	app := New(cfg, Deps{
		DB:        db,
		Redis:     rdb,
		Generator: generator,
		Storage:   service.NewStorageProvider(ctx, &cfg.Storage),
	})
	app.ConfigDir = configDir
	app.shutdownTracer = shutdownTracer
	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if a.ConfigDir != "" {
		go func() {
			if err := configwatcher.WatchConfig(ctx, a.ConfigDir, a.applyConfig); err != nil {
				logger.Log.Warn("Config hot reload disabled", zap.Error(err))
			}
		}()
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	if a.shutdownTracer != nil {
		if err := a.shutdownTracer(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
	logger.Log.Sync()
}
