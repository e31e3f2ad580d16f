package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thebagdis/storefront/internal/api/handlers"
	"github.com/thebagdis/storefront/internal/api/middleware"
	"github.com/thebagdis/storefront/internal/cache"
	"github.com/thebagdis/storefront/internal/config"
	"github.com/thebagdis/storefront/internal/health"
	"github.com/thebagdis/storefront/internal/metrics"
	repository "github.com/thebagdis/storefront/internal/repositories"
	service "github.com/thebagdis/storefront/internal/services"
	"github.com/thebagdis/storefront/internal/telemetry"
	"github.com/thebagdis/storefront/pkg/razorpay"
	"github.com/thebagdis/storefront/pkg/sendgrid"
	"github.com/thebagdis/storefront/pkg/stripe"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx := context.Background()

	// Tracing setup (no-op unless enabled)
	shutdownTracing, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		slog.Error("Failed to set up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := repos.Close(closeCtx); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rateRepo := repository.NewRateLimitRepo(redisClient, cfg)
	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	// Gateway clients
	jwtKey := []byte(cfg.Security.JWTKey)
	razorpayClient := razorpay.NewRazorpayClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.WebhookSecret)
	stripeClient := stripe.NewStripeClient(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)
	emailClient := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	// Services and handlers
	userService := service.NewUserService(repos.User, rateRepo, jwtKey)
	userHandler := handlers.NewUserHandler(userService)
	productService := service.NewProductService(repos.Product, productCache, cfg.Cache.DefaultTTL)
	productHandler := handlers.NewProductHandler(productService, userService)
	cartService := service.NewCartService(repos.Cart, repos.Product)
	cartHandler := handlers.NewCartHandler(cartService)
	paymentService := service.NewPaymentService(repos.Order, razorpayClient, stripeClient, cfg)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	notificationService := service.NewNotificationService(repos.Notification, emailClient)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	orderService := service.NewOrderService(repos.Order, repos.Product, paymentService, cartService, notificationService)
	orderHandler := handlers.NewOrderHandler(orderService, userService)
	blogService := service.NewBlogService(repos.Blog)
	blogHandler := handlers.NewBlogHandler(blogService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("Failed to register health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env))

	// Setup router
	routerMux := http.NewServeMux()

	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("PUT /api/v1/users/profile", authMiddleware.Authenticate(userHandler.UpdateProfile()))

	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("POST /api/v1/products", authMiddleware.RequireAdmin(productHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/products/{id}", authMiddleware.RequireAdmin(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/products/{id}", authMiddleware.RequireAdmin(productHandler.DeleteProduct()))
	routerMux.HandleFunc("POST /api/v1/products/{id}/reviews", authMiddleware.Authenticate(productHandler.AddReview()))

	routerMux.HandleFunc("GET /api/v1/carts", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/carts/items/{id}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/v1/carts", authMiddleware.Authenticate(cartHandler.ClearCart()))

	routerMux.HandleFunc("POST /api/v1/orders", authMiddleware.Authenticate(orderHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("PATCH /api/v1/orders/{id}/status", authMiddleware.RequireAdmin(orderHandler.UpdateStatus()))

	routerMux.HandleFunc("POST /api/v1/payments/webhook/razorpay", paymentHandler.RazorpayWebhook())
	routerMux.HandleFunc("POST /api/v1/payments/webhook/stripe", paymentHandler.StripeWebhook())

	routerMux.HandleFunc("GET /api/v1/admin/users", authMiddleware.RequireAdmin(userHandler.ListUsers()))
	routerMux.HandleFunc("PATCH /api/v1/admin/users/{id}", authMiddleware.RequireAdmin(userHandler.UpdateUserRole()))
	routerMux.HandleFunc("DELETE /api/v1/admin/users/{id}", authMiddleware.RequireAdmin(userHandler.DeleteUser()))
	routerMux.HandleFunc("GET /api/v1/admin/orders", authMiddleware.RequireAdmin(orderHandler.ListAllOrders()))

	routerMux.HandleFunc("GET /api/v1/blogs", blogHandler.ListBlogs())
	routerMux.HandleFunc("GET /api/v1/blogs/{id}", blogHandler.GetBlog())
	routerMux.HandleFunc("POST /api/v1/blogs", authMiddleware.RequireAdmin(blogHandler.CreateBlog()))
	routerMux.HandleFunc("PUT /api/v1/blogs/{id}", authMiddleware.RequireAdmin(blogHandler.UpdateBlog()))
	routerMux.HandleFunc("DELETE /api/v1/blogs/{id}", authMiddleware.RequireAdmin(blogHandler.DeleteBlog()))

	routerMux.HandleFunc("GET /api/v1/notifications", authMiddleware.Authenticate(notificationHandler.ListNotifications()))

	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)

	if cfg.Telemetry.Enabled {
		handler = otelhttp.NewHandler(handler, "http.server")
	}

	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("Tracing shutdown encountered an issue", slog.String("error", err.Error()))
	}

	if err := redisClient.Close(); err != nil {
		slog.Error("Error closing redis connection", slog.String("error", err.Error()))
	}
}
