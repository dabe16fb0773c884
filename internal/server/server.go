// Package server owns the application boot sequence: config, backing
// stores, dependency wiring, background workers, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/stripe/stripe-go/v76"

	"github.com/shashiranjanraj/repwear/app/controllers"
	"github.com/shashiranjanraj/repwear/app/jobs"
	"github.com/shashiranjanraj/repwear/app/repositories"
	"github.com/shashiranjanraj/repwear/app/routes"
	"github.com/shashiranjanraj/repwear/app/services"
	"github.com/shashiranjanraj/repwear/config"
	"github.com/shashiranjanraj/repwear/internal/kernel"
	"github.com/shashiranjanraj/repwear/pkg/cache"
	"github.com/shashiranjanraj/repwear/pkg/logger"
	"github.com/shashiranjanraj/repwear/pkg/mongodb"
	"github.com/shashiranjanraj/repwear/pkg/queue"
	"github.com/shashiranjanraj/repwear/pkg/schedule"
	"github.com/shashiranjanraj/repwear/pkg/storage"
	"github.com/shashiranjanraj/repwear/pkg/workerpool"
)

const (
	queueWorkers     = 5
	uploadPoolSize   = 4
	shutdownTimeout  = 10 * time.Second
	dashboardRewarm  = 15 * time.Minute
	webhookDedupeTTL = 24 * time.Hour
)

// Start boots the API and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := mongodb.Connect(ctx, config.MongoURI(), config.MongoDB())
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := conn.Disconnect(dctx); err != nil {
			logger.Error("mongodb disconnect", "error", err)
		}
	}()

	if err := conn.EnsureIndexes(ctx); err != nil {
		return err
	}

	// Redis is optional: without it caching and webhook dedupe degrade
	// but the API stays up.
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, running without cache", "error", err)
	}

	storage.Connect()
	stripe.Key = config.StripeSecretKey()

	db := conn.Database()
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	wishlistRepo := repositories.NewWishlistRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	dashboardRepo := repositories.NewDashboardRepository(db)
	blogRepo := repositories.NewBlogRepository(db)
	contentRepo := repositories.NewContentRepository(db)

	// Queue: Redis-backed when available so jobs survive restarts,
	// in-memory otherwise.
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	jobs.Configure(cartRepo, userRepo, orderRepo)
	jobs.RegisterAll()
	queue.StartWorkers(ctx, queueWorkers)

	dispatch := func(job queue.Job) {
		if err := queue.Dispatch(job); err != nil {
			logger.Error("queue dispatch", "error", err)
		}
	}

	authSvc := services.NewAuthService(userRepo)
	productSvc := services.NewProductService(productRepo, func(productID string) {
		dispatch(&jobs.CartPruneJob{ProductID: productID})
	})
	cartSvc := services.NewCartService(cartRepo, productRepo)
	wishlistSvc := services.NewWishlistService(wishlistRepo, productRepo)
	orderSvc := services.NewOrderService(orderRepo)
	dashboardSvc := services.NewDashboardService(dashboardRepo)
	blogSvc := services.NewBlogService(blogRepo)
	contentSvc := services.NewContentService(contentRepo, func(email string) {
		dispatch(&jobs.NewsletterWelcomeJob{Email: email})
	})

	// First delivery of a webhook event claims its ID for 24h; Stripe
	// redeliveries see the claim and are skipped. A failed handler
	// releases its claim so the redelivery gets processed.
	replayGuard := &services.ReplayGuard{
		Claim: func(ctx context.Context, eventID string) (bool, error) {
			return cache.SetNX("webhook:evt:"+eventID, 1, webhookDedupeTTL)
		},
		Release: func(ctx context.Context, eventID string) error {
			return cache.Del("webhook:evt:" + eventID)
		},
	}
	paymentSvc := services.NewPaymentService(
		cartSvc, cartRepo, productRepo, orderRepo, orderSvc,
		replayGuard,
		func(orderNumber, userID string) {
			dispatch(&jobs.OrderConfirmationJob{OrderNumber: orderNumber, UserID: userID})
		},
	)

	uploadPool := workerpool.New(uploadPoolSize)
	defer uploadPool.Shutdown()
	uploadSvc := services.NewUploadService(storage.Default(), uploadPool)

	sched := schedule.New()
	sched.Every(dashboardRewarm, "dashboard:rewarm", dashboardSvc.RefreshDashboardCache)
	sched.Start(ctx)

	r := kernel.NewHTTPKernel(routes.Controllers{
		Health:    controllers.NewHealthController(conn),
		Auth:      controllers.NewAuthController(authSvc),
		Product:   controllers.NewProductController(productSvc),
		Cart:      controllers.NewCartController(cartSvc),
		Wishlist:  controllers.NewWishlistController(wishlistSvc),
		Order:     controllers.NewOrderController(orderSvc),
		Payment:   controllers.NewPaymentController(paymentSvc),
		Dashboard: controllers.NewDashboardController(dashboardSvc),
		Blog:      controllers.NewBlogController(blogSvc),
		Content:   controllers.NewContentController(contentSvc),
		Upload:    controllers.NewUploadController(uploadSvc),
	})

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
