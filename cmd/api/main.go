package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appcart "github.com/xiebiao/storefront/internal/application/cart"
	appdiscount "github.com/xiebiao/storefront/internal/application/discount"
	appdispute "github.com/xiebiao/storefront/internal/application/dispute"
	apporder "github.com/xiebiao/storefront/internal/application/order"
	appshipping "github.com/xiebiao/storefront/internal/application/shipping"
	appuser "github.com/xiebiao/storefront/internal/application/user"
	"github.com/xiebiao/storefront/internal/domain/user"
	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/storefront/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/storefront/internal/interface/http/handler"
	"github.com/xiebiao/storefront/internal/interface/http/middleware"
	"github.com/xiebiao/storefront/pkg/jwt"
	"github.com/xiebiao/storefront/pkg/metrics"
	"github.com/xiebiao/storefront/pkg/mq"
	"github.com/xiebiao/storefront/pkg/response"
	"github.com/xiebiao/storefront/pkg/tracing"
)

// @title Storefront API
// @version 1.0
// @description 购物车结算与订单履约服务
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	metrics.InitMetrics()

	// 链路追踪按配置开启,采集器不可用不阻断启动
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			log.Printf("tracing disabled: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(ctx)
			}()
		}
	}

	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("connect mysql: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("connect redis: %v", err)
	}

	// 事件发布按配置开启;未开启时events内部退化为no-op
	var publisher *mq.Publisher
	if cfg.MQ.Enabled {
		publisher, err = mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("connect mq: %v", err)
		}
		defer publisher.Close()
	}

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	productRepo := mysql.NewProductRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	discountRepo := mysql.NewDiscountRepository(db)
	shippingRepo := mysql.NewShippingRepository(db)
	addressRepo := mysql.NewAddressRepository(db)
	disputeRepo := mysql.NewDisputeRepository(db)
	ledger := mysql.NewStockLedger(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	usageStore := redis.NewDiscountUsageStore(redisClient)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)

	// 领域层
	userService := user.NewService(userRepo)

	// 应用层
	var orderEvents *apporder.OrderEvents
	if publisher != nil {
		orderEvents = apporder.NewOrderEvents(publisher)
	}

	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(jwtManager, sessionStore)

	getCartUseCase := appcart.NewGetCartUseCase(cartRepo, productRepo)
	addItemUseCase := appcart.NewAddItemUseCase(cartRepo, productRepo)
	updateItemUseCase := appcart.NewUpdateItemUseCase(cartRepo, productRepo)
	removeItemUseCase := appcart.NewRemoveItemUseCase(cartRepo, productRepo)

	createOrderUseCase := apporder.NewCreateOrderUseCase(
		cartRepo, productRepo, addressRepo, shippingRepo,
		discountRepo, usageStore, orderRepo, ledger, orderEvents,
	)
	cancelOrderUseCase := apporder.NewCancelOrderUseCase(orderRepo, ledger, txManager, orderEvents)
	trackOrderUseCase := apporder.NewTrackOrderUseCase(orderRepo)
	acceptOrderUseCase := apporder.NewAcceptOrderUseCase(orderRepo)
	updateStatusUseCase := apporder.NewUpdateStatusUseCase(orderRepo, orderEvents)
	listOrdersUseCase := apporder.NewListOrdersUseCase(orderRepo)

	validateDiscountUseCase := appdiscount.NewValidateUseCase(cartRepo, productRepo, discountRepo, usageStore)
	shippingUseCase := appshipping.NewUseCase(shippingRepo)
	openDisputeUseCase := appdispute.NewOpenDisputeUseCase(disputeRepo, orderRepo)
	resolveDisputeUseCase := appdispute.NewResolveDisputeUseCase(disputeRepo, orderRepo, txManager, orderEvents)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase)
	cartHandler := handler.NewCartHandler(getCartUseCase, addItemUseCase, updateItemUseCase, removeItemUseCase)
	orderHandler := handler.NewOrderHandler(
		createOrderUseCase, cancelOrderUseCase, trackOrderUseCase,
		acceptOrderUseCase, updateStatusUseCase, listOrdersUseCase,
	)
	shippingHandler := handler.NewShippingHandler(shippingUseCase)
	discountHandler := handler.NewDiscountHandler(validateDiscountUseCase)
	disputeHandler := handler.NewDisputeHandler(openDisputeUseCase, resolveDisputeUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())

	registerRoutes(r, userHandler, cartHandler, orderHandler, shippingHandler, discountHandler, disputeHandler, authMiddleware)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}

func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	shippingHandler *handler.ShippingHandler,
	discountHandler *handler.DiscountHandler,
	disputeHandler *handler.DisputeHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}

		// 配送方式与运费试算是公开接口,结算页登录前也要展示
		shipping := v1.Group("/shipping")
		{
			shipping.GET("/methods", shippingHandler.ListMethods)
			shipping.POST("/calculate", shippingHandler.Calculate)
		}

		cart := v1.Group("/cart")
		cart.Use(authMiddleware.RequireAuth())
		{
			cart.GET("", cartHandler.GetCart)
			cart.POST("", cartHandler.AddItem)
			cart.PUT("/:itemId", cartHandler.UpdateItem)
			cart.DELETE("/:itemId", cartHandler.RemoveItem)
			cart.DELETE("", cartHandler.ClearCart)
		}

		orders := v1.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/status/:status", orderHandler.ListOrdersByStatus)
			orders.GET("/number/:orderNumber", orderHandler.GetOrderByNumber)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PUT("/:id/cancel", orderHandler.CancelOrder)
			orders.GET("/:id/track", orderHandler.TrackOrder)
			orders.PUT("/:id/accept", orderHandler.AcceptOrder)
			orders.PUT("/:id/status", authMiddleware.RequireAdmin(), orderHandler.UpdateOrderStatus)
			orders.GET("/admin/all", authMiddleware.RequireAdmin(), orderHandler.AdminListOrders)
			orders.GET("/admin/:id", authMiddleware.RequireAdmin(), orderHandler.AdminGetOrder)
		}

		discounts := v1.Group("/discounts")
		discounts.Use(authMiddleware.RequireAuth())
		{
			discounts.POST("/validate", discountHandler.Validate)
		}

		disputes := v1.Group("/disputes")
		disputes.Use(authMiddleware.RequireAuth())
		{
			disputes.POST("", disputeHandler.OpenDispute)
			disputes.PUT("/:id/status", authMiddleware.RequireAdmin(), disputeHandler.ResolveDispute)
		}
	}
}
