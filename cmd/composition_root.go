package cmd

import (
	"log/slog"

	"freight/internal/adapters/in/http"
	"freight/internal/adapters/out/cache/memoryquote"
	"freight/internal/adapters/out/cache/redisquote"
	"freight/internal/adapters/out/postgres/raterepo"
	"freight/internal/adapters/out/postgres/sellerconfigrepo"
	"freight/internal/adapters/out/postgres/zonerepo"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/ports"
	"freight/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CacheBackendRedis selects the redis quote cache; anything else selects the
// in-memory one.
const CacheBackendRedis = "redis"

type CompositionRoot struct {
	configs Config
	gormDB  *gorm.DB
	logger  *slog.Logger

	quoteCache  ports.QuoteCache
	memoryCache *memoryquote.MemoryQuoteCache
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	root := CompositionRoot{
		configs: configs,
		gormDB:  gormDB,
		logger:  logger,
	}

	if configs.CacheBackend == CacheBackendRedis {
		client := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
		cache, err := redisquote.NewRedisQuoteCache(client)
		if err != nil {
			return CompositionRoot{}, err
		}
		root.quoteCache = cache
	} else {
		memory := memoryquote.NewMemoryQuoteCache()
		root.quoteCache = memory
		root.memoryCache = memory
	}

	return root, nil
}

func (c *CompositionRoot) CreateGetSellerShippingQueryHandler() (queries.GetSellerShippingQueryHandler, error) {
	return queries.NewGetSellerShippingQueryHandler(
		zonerepo.NewGormZoneRepository(c.gormDB),
		raterepo.NewGormRateRepository(c.gormDB),
		sellerconfigrepo.NewGormSellerConfigRepository(c.gormDB),
		c.quoteCache,
		c.configs.QuoteTTL,
	)
}

func (c *CompositionRoot) CreateGetCartShippingQueryHandler() (queries.GetCartShippingQueryHandler, error) {
	sellerHandler, err := c.CreateGetSellerShippingQueryHandler()
	if err != nil {
		return queries.GetCartShippingQueryHandler{}, err
	}
	return queries.NewGetCartShippingQueryHandler(
		sellerHandler,
		c.configs.MaxConcurrentSellers,
		c.configs.CartQuoteTimeout,
	), nil
}

func (c *CompositionRoot) CreateHTTPServer() (*http.Server, error) {
	sellerHandler, err := c.CreateGetSellerShippingQueryHandler()
	if err != nil {
		return nil, err
	}
	cartHandler, err := c.CreateGetCartShippingQueryHandler()
	if err != nil {
		return nil, err
	}
	return http.NewServer(cartHandler, sellerHandler), nil
}

// CreateJobManager wires the background jobs. The quote sweep only exists for
// the in-memory cache backend; redis expires keys on its own.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var sweep *jobs.QuoteSweepJob
	if c.memoryCache != nil {
		sweep = jobs.NewQuoteSweepJob(c.memoryCache, c.logger)
	}
	return jobs.NewJobManager(sweep)
}
