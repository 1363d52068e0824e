package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"digistore_v1/internal/config"
	"digistore_v1/internal/controller"
	"digistore_v1/internal/logger"
	"digistore_v1/internal/middleware"
	"digistore_v1/internal/model"
	"digistore_v1/internal/repository"
	"digistore_v1/internal/router"
	"digistore_v1/internal/service"
	"digistore_v1/internal/task"
	"digistore_v1/pkg/database"
)

func main() {
	logger.InitLogger()
	defer logger.Sync()

	// 1. 加载配置
	cfg := config.Load()

	// 2. 初始化数据库
	db := initDatabase(cfg)

	// 3. 初始化依赖
	deps := initDependencies(cfg, db)

	// 4. 启动定时任务
	initTasks(cfg, deps)

	// 5. 初始化路由并启动服务
	r := router.SetupRouter(deps.Tokens, deps.Controllers)
	startServer(cfg, r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Tokens      *middleware.TokenManager
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User        repository.UserRepository
	Category    repository.CategoryRepository
	Product     repository.ProductRepository
	Cart        repository.CartRepository
	Order       repository.OrderRepository
	Purchase    repository.PurchaseRepository
	Review      repository.ReviewRepository
	CheckoutUow *repository.CheckoutUnitOfWork
}

// Services 服务集合
type Services struct {
	User    *service.UserService
	Catalog *service.CatalogService
	Cart    *service.CartService
	Order   *service.OrderService
	Review  *service.ReviewService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(cfg.DSN(),
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Purchase{},
		&model.Review{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB) *Dependencies {
	// -------- 凭证服务 --------
	tokens := middleware.NewTokenManager(middleware.JWTConfig{
		SecretKey:      cfg.JWTSecret,
		AccessTokenTTL: cfg.AccessTokenTTL,
		Issuer:         cfg.JWTIssuer,
	})

	// -------- Repo 层 --------
	repos := &Repositories{
		User:        repository.NewUserRepository(db),
		Category:    repository.NewCategoryRepository(db),
		Product:     repository.NewProductRepository(db),
		Cart:        repository.NewCartRepository(db),
		Order:       repository.NewOrderRepository(db),
		Purchase:    repository.NewPurchaseRepository(db),
		Review:      repository.NewReviewRepository(db),
		CheckoutUow: repository.NewCheckoutUnitOfWork(db),
	}

	// -------- 业务服务 --------
	services := &Services{
		User:    service.NewUserService(repos.User, tokens),
		Catalog: service.NewCatalogService(repos.Category, repos.Product),
		Cart:    service.NewCartService(repos.Cart, repos.Product),
		Order:   service.NewOrderService(repos.CheckoutUow, repos.Order, repos.Purchase),
		Review:  service.NewReviewService(repos.Review, repos.Product, repos.Purchase),
	}

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		User:    controller.NewUserController(services.User),
		Catalog: controller.NewCatalogController(services.Catalog),
		Cart:    controller.NewCartController(services.Cart),
		Order:   controller.NewOrderController(services.Order),
		Review:  controller.NewReviewController(services.Review),
	}

	return &Dependencies{
		DB:          db,
		Tokens:      tokens,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(cfg *config.Config, deps *Dependencies) {
	cleanupTask := task.NewCartCleanupTask(
		deps.Repos.Cart,
		cfg.CartCleanupSpec,
		time.Duration(cfg.CartRetentionHours)*time.Hour,
	)
	cleanupTask.Start()

	logger.Log.Info("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(cfg *config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		logger.Log.Infow("HTTP 服务启动", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalw("服务启动失败", "error", err)
		}
	}()

	// 等待退出信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("收到退出信号，正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Errorw("服务关闭异常", "error", err)
	}
	logger.Log.Info("服务已退出")
}
