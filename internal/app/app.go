package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"program_hub_backend/internal/config"
	"program_hub_backend/internal/controller"
	"program_hub_backend/internal/repository"
	"program_hub_backend/internal/service"
	"program_hub_backend/internal/util"
	"program_hub_backend/pkg/database"
	"program_hub_backend/pkg/logger"
	"program_hub_backend/pkg/monitoring"
	"program_hub_backend/pkg/security"
	"program_hub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB // local 模式下为 nil
	Redis           *redis.Client
	repos           *repositories
	services        *services
	configCallbacks []func(*config.Config)
	tracerShutdown  func(context.Context) error
}

type repositories struct {
	program    *repository.ProgramRepository
	user       *repository.UserRepository
	voucher    *repository.VoucherRepository
	banner     *repository.BannerRepository
	discussion *repository.DiscussionRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	program    *service.ProgramService
	access     *service.AccessService
	progress   *service.ProgressService
	user       *service.UserService
	voucher    *service.VoucherService
	banner     *service.BannerService
	discussion *service.DiscussionService
}

type controllers struct {
	auth       *controller.AuthController
	program    *controller.ProgramController
	learner    *controller.LearnerController
	voucher    *controller.VoucherController
	report     *controller.ReportController
	banner     *controller.BannerController
	discussion *controller.DiscussionController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// initGateway 按配置选择存储策略：
// remote = MySQL 文档表 + Redis 快照缓存；local = 进程内存储（开发与测试用）
func (a *App) initGateway(cfg *config.Config) *repository.Gateway {
	if cfg.Store.Mode == util.StoreModeLocal {
		logger.Log.Info("Using in-process document store")
		return repository.NewGateway(repository.NewMemoryStore(), repository.NewMemorySnapshotCache())
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}
	a.DB = db

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	a.Redis = rdb

	return repository.NewGateway(repository.NewSQLStore(db), repository.NewRedisCache(rdb))
}

func (a *App) initRepositories(gw *repository.Gateway) *repositories {
	return &repositories{
		program:    repository.NewProgramRepository(gw),
		user:       repository.NewUserRepository(gw),
		voucher:    repository.NewVoucherRepository(gw),
		banner:     repository.NewBannerRepository(gw),
		discussion: repository.NewDiscussionRepository(gw),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.program = service.NewProgramService(repos.program, service.NewElementFactory())
	s.access = service.NewAccessService(repos.user, repos.program)
	s.progress = service.NewProgressService(repos.user, repos.program)
	s.user = service.NewUserService(repos.user, repos.program)
	s.voucher = service.NewVoucherService(repos.voucher, repos.program, repos.user)
	s.banner = service.NewBannerService(repos.banner)
	s.discussion = service.NewDiscussionService(repos.discussion, repos.user, s.access)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		program:    controller.NewProgramController(s.program, s.storage),
		learner:    controller.NewLearnerController(s.program, s.access, s.user, s.progress, s.voucher),
		voucher:    controller.NewVoucherController(s.voucher),
		report:     controller.NewReportController(s.progress),
		banner:     controller.NewBannerController(s.banner),
		discussion: controller.NewDiscussionController(s.discussion),
		health:     controller.NewHealthController(a.DB, a.Config.Store.Mode),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &App{
		Config: cfg,
	}

	gw := app.initGateway(cfg)
	repos := app.initRepositories(gw)
	app.repos = repos
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("program-hub", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerShutdown = tp.Shutdown
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
		router.Static("/api/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Error("Failed to close redis client", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
