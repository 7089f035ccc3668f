//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 运行 `wire gen ./cmd/api` 生成wire_gen.go;main.go当前仍用手动装配,
// 两者的依赖链保持一致。
package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appcart "github.com/xiebiao/storefront/internal/application/cart"
	appdiscount "github.com/xiebiao/storefront/internal/application/discount"
	appdispute "github.com/xiebiao/storefront/internal/application/dispute"
	apporder "github.com/xiebiao/storefront/internal/application/order"
	appshipping "github.com/xiebiao/storefront/internal/application/shipping"
	appuser "github.com/xiebiao/storefront/internal/application/user"
	"github.com/xiebiao/storefront/internal/domain/discount"
	"github.com/xiebiao/storefront/internal/domain/user"
	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/storefront/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/storefront/internal/interface/http/handler"
	"github.com/xiebiao/storefront/internal/interface/http/middleware"
	"github.com/xiebiao/storefront/pkg/jwt"
	"github.com/xiebiao/storefront/pkg/mq"
)

var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewProductRepository,
	mysql.NewCartRepository,
	mysql.NewOrderRepository,
	mysql.NewDiscountRepository,
	mysql.NewShippingRepository,
	mysql.NewAddressRepository,
	mysql.NewDisputeRepository,
	mysql.NewStockLedger,
	mysql.NewTxManager,
	wire.Bind(new(apporder.TxRunner), new(*mysql.TxManager)),
	wire.Bind(new(appdispute.TxRunner), new(*mysql.TxManager)),
)

var domainSet = wire.NewSet(
	user.NewService,
)

var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appcart.NewGetCartUseCase,
	appcart.NewAddItemUseCase,
	appcart.NewUpdateItemUseCase,
	appcart.NewRemoveItemUseCase,
	apporder.NewCreateOrderUseCase,
	apporder.NewCancelOrderUseCase,
	apporder.NewTrackOrderUseCase,
	apporder.NewAcceptOrderUseCase,
	apporder.NewUpdateStatusUseCase,
	apporder.NewListOrdersUseCase,
	appdiscount.NewValidateUseCase,
	appshipping.NewUseCase,
	appdispute.NewOpenDisputeUseCase,
	appdispute.NewResolveDisputeUseCase,
	provideOrderEvents,
	wire.Bind(new(appdispute.OrderEvents), new(*apporder.OrderEvents)),
)

var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	provideUsageStore,
	middleware.NewAuthMiddleware,
)

var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
	handler.NewShippingHandler,
	handler.NewDiscountHandler,
	handler.NewDisputeHandler,
)

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
}

func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

func provideUsageStore(client *goredis.Client) discount.UsageStore {
	return redis.NewDiscountUsageStore(client)
}

// provideOrderEvents MQ未启用时返回nil,事件出口自身做nil保护
func provideOrderEvents(cfg *config.Config) *apporder.OrderEvents {
	if !cfg.MQ.Enabled {
		return nil
	}
	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		log.Printf("mq unavailable, order events disabled: %v", err)
		return nil
	}
	return apporder.NewOrderEvents(publisher)
}

func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	shippingHandler *handler.ShippingHandler,
	discountHandler *handler.DiscountHandler,
	disputeHandler *handler.DisputeHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())
	registerRoutes(r, userHandler, cartHandler, orderHandler, shippingHandler, discountHandler, disputeHandler, authMiddleware)
	return r
}

// InitializeApp 组装整个应用,返回配置好的Gin引擎
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
