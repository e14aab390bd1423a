package container

import (
	"github.com/craftline/catalog-admin/cmd/catalog/repository"
	"github.com/craftline/catalog-admin/cmd/catalog/service"
	"github.com/craftline/catalog-admin/common/bootstrap"
	"github.com/craftline/catalog-admin/common/cache"
	"github.com/craftline/catalog-admin/common/notify"
	"github.com/craftline/catalog-admin/common/ratelimit"
)

// Container holds all initialized repositories and services (singleton
// pattern, wired once at startup)
type Container struct {
	Components *bootstrap.Components

	Notifier    notify.Notifier
	RateLimiter *ratelimit.RateLimiter

	// Repositories
	ProfileRepo     *repository.ProfileRepository
	CategoryRepo    *repository.CategoryRepository
	ProductRepo     *repository.ProductRepository
	ItemRepo        *repository.ItemRepository
	CertificateRepo *repository.CertificateRepository
	BadgeRepo       *repository.BadgeRepository
	AssetRepo       *repository.AssetRepository

	// Services
	ProfileService     *service.ProfileService
	CategoryService    *service.CategoryService
	ProductService     *service.ProductService
	ItemService        *service.ItemService
	CertificateService *service.CertificateService
	BadgeService       *service.BadgeService
	AssetService       *service.AssetService
}

// NewContainer initializes all repositories and services once
func NewContainer(components *bootstrap.Components) *Container {
	log := components.Logger
	cfg := components.Config

	// Collection cache: Redis-backed when bootstrap provided one, memory
	// otherwise so reorders stay optimistic even without Redis.
	collectionCache := components.Cache
	if collectionCache == nil {
		collectionCache = cache.NewMemoryCache(log)
	}

	var notifier notify.Notifier
	if components.Redis != nil {
		notifier = notify.NewRedisNotifier(components.Redis, log)
	} else {
		notifier = notify.NewMemoryNotifier()
	}

	var limiter *ratelimit.RateLimiter
	if components.Redis != nil {
		limiter = ratelimit.NewRateLimiter(components.Redis.GetUnderlying(), log)
	}

	profileRepo := repository.NewProfileRepository(components.DB)
	categoryRepo := repository.NewCategoryRepository(components.DB)
	productRepo := repository.NewProductRepository(components.DB)
	itemRepo := repository.NewItemRepository(components.DB)
	certificateRepo := repository.NewCertificateRepository(components.DB)
	badgeRepo := repository.NewBadgeRepository(components.DB)
	assetRepo := repository.NewAssetRepository(components.DB)

	ttl := cfg.Cache.DefaultTTL

	return &Container{
		Components:  components,
		Notifier:    notifier,
		RateLimiter: limiter,

		ProfileRepo:     profileRepo,
		CategoryRepo:    categoryRepo,
		ProductRepo:     productRepo,
		ItemRepo:        itemRepo,
		CertificateRepo: certificateRepo,
		BadgeRepo:       badgeRepo,
		AssetRepo:       assetRepo,

		ProfileService:     service.NewProfileService(profileRepo, collectionCache, notifier, log, ttl),
		CategoryService:    service.NewCategoryService(categoryRepo, collectionCache, notifier, log, ttl),
		ProductService:     service.NewProductService(productRepo, collectionCache, notifier, log, ttl),
		ItemService:        service.NewItemService(itemRepo, collectionCache, notifier, log, ttl),
		CertificateService: service.NewCertificateService(certificateRepo, collectionCache, notifier, log, ttl),
		BadgeService:       service.NewBadgeService(badgeRepo, productRepo, collectionCache, notifier, log, ttl),
		AssetService:       service.NewAssetService(assetRepo, cfg.Uploads.MaxSizeBytes, log),
	}
}

// DrainReorders blocks until every pending reorder persistence batch has
// completed. Called during graceful shutdown.
func (c *Container) DrainReorders() {
	c.ProfileService.Drain()
	c.CategoryService.Drain()
	c.ProductService.Drain()
	c.ItemService.Drain()
	c.CertificateService.Drain()
	c.BadgeService.Drain()
}
