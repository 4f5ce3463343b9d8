package provider

import (
	"github.com/ice-club/storefront/internal/authz"
	"github.com/ice-club/storefront/internal/cache"
	"github.com/ice-club/storefront/internal/config"
	"github.com/ice-club/storefront/internal/models"
	"github.com/ice-club/storefront/internal/queue"
	"github.com/ice-club/storefront/internal/repository"
	"github.com/ice-club/storefront/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config       *config.Config
	QueueClient  *queue.Client
	CartStore    cache.CartStore
	AuthzService *authz.Service

	// 仓库
	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	VariantRepo  repository.VariantRepository
	SizeRepo     repository.SizeRepository
	OrderRepo    repository.OrderRepository
	MessageRepo  repository.ContactMessageRepository
	UserRepo     repository.UserRepository

	// 服务
	AuthService      *service.AuthService
	CaptchaService   *service.CaptchaService
	CategoryService  *service.CategoryService
	ProductService   *service.ProductService
	CartService      *service.CartService
	OrderService     *service.OrderService
	ContactService   *service.ContactService
	DashboardService *service.DashboardService
	EmailService     *service.EmailService
}

// NewContainer 创建并装配容器
func NewContainer(cfg *config.Config, queueClient *queue.Client) *Container {
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		CartStore:   cache.NewCartStore(),
	}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.VariantRepo = repository.NewVariantRepository(db)
	c.SizeRepo = repository.NewSizeRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.MessageRepo = repository.NewContactMessageRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email, &c.Config.Store)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.VariantRepo, c.SizeRepo, c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartStore, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.SizeRepo, c.CartStore, c.QueueClient, c.EmailService)
	c.ContactService = service.NewContactService(c.MessageRepo, c.QueueClient, c.EmailService, &c.Config.Store)
	c.DashboardService = service.NewDashboardService(repository.NewDashboardRepository(models.DB))
}
