package provider

import (
	"github.com/giftgalore/api/internal/authz"
	"github.com/giftgalore/api/internal/cache"
	"github.com/giftgalore/api/internal/config"
	"github.com/giftgalore/api/internal/logger"
	"github.com/giftgalore/api/internal/models"
	"github.com/giftgalore/api/internal/queue"
	"github.com/giftgalore/api/internal/repository"
	"github.com/giftgalore/api/internal/service"
)

// Container is the dependency injection root shared by the HTTP server and
// the queue worker.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo     repository.AdminRepository
	UserRepo      repository.UserRepository
	ProductRepo   repository.ProductRepository
	CategoryRepo  repository.CategoryRepository
	CartRepo      repository.CartRepository
	WishlistRepo  repository.WishlistRepository
	OrderRepo     repository.OrderRepository
	TrackingRepo  repository.OrderTrackingRepository
	DashboardRepo repository.DashboardRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	UserAuthService  *service.UserAuthService
	EmailService     *service.EmailService
	CaptchaService   *service.CaptchaService
	UploadService    *service.UploadService
	ProductService   *service.ProductService
	CategoryService  *service.CategoryService
	CartService      *service.CartService
	WishlistService  *service.WishlistService
	OrderService     *service.OrderService
	PincodeService   *service.PincodeService
	CustomerService  *service.CustomerService
	DashboardService *service.DashboardService
}

// NewContainer wires repositories and services over the open database.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.TrackingRepo = repository.NewOrderTrackingRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.AdminRepo)
	c.UploadService = service.NewUploadService(c.Config)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.TrackingRepo,
		c.ProductRepo,
		c.CartRepo,
		c.QueueClient,
		service.NewTransitionTable(c.Config.Order.Transitions),
		c.Config.Order.Currency,
	)
	c.PincodeService = service.NewPincodeService(c.Config.Address.DataPath)
	c.CustomerService = service.NewCustomerService(c.UserRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.OrderRepo, c.ProductRepo, c.Config.Order.LowStockThreshold)
}
