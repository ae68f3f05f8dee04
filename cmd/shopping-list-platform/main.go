package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/compralista/shopping-list-platform/internal/api/handlers"
	"github.com/compralista/shopping-list-platform/internal/api/middleware"
	"github.com/compralista/shopping-list-platform/internal/config"
	"github.com/compralista/shopping-list-platform/internal/database"
	"github.com/compralista/shopping-list-platform/internal/health"
	"github.com/compralista/shopping-list-platform/internal/metrics"
	repository "github.com/compralista/shopping-list-platform/internal/repositories"
	service "github.com/compralista/shopping-list-platform/internal/services"
	"github.com/go-chi/cors"
)

func main() {
	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	if err := database.RunMigrations(repos.DB); err != nil {
		slog.Error("Error running migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis setup (share-code rate limiting)
	redisRepo, err := repository.NewRedisRepo(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	listService := service.NewShoppingListService(repos.ShoppingList, redisRepo)
	listHandler := handlers.NewShoppingListHandler(listService)
	itemHandler := handlers.NewItemHandler(listService)
	marketService := service.NewMarketService(repos.Market)
	marketHandler := handlers.NewMarketHandler(marketService)
	paymentService := service.NewPaymentService(repos.Payment)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("Error building health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/shopping-lists", listHandler.CreateList())
	routerMux.HandleFunc("GET /api/v1/shopping-lists", listHandler.ListLists())
	routerMux.HandleFunc("GET /api/v1/shopping-lists/stats", listHandler.GetStats())
	routerMux.HandleFunc("GET /api/v1/shopping-lists/{id}", listHandler.GetList())
	routerMux.HandleFunc("PATCH /api/v1/shopping-lists/{id}", listHandler.UpdateList())
	routerMux.HandleFunc("DELETE /api/v1/shopping-lists", listHandler.DeleteList())
	routerMux.HandleFunc("GET /api/v1/shared/{code}", listHandler.GetByShareCode())
	routerMux.HandleFunc("POST /api/v1/shopping-lists/{listId}/items", itemHandler.AddItem())
	routerMux.HandleFunc("PATCH /api/v1/items/{itemId}", itemHandler.UpdateItem())
	routerMux.HandleFunc("PUT /api/v1/items/{itemId}", itemHandler.UpdateItem())
	routerMux.HandleFunc("DELETE /api/v1/items/{itemId}", itemHandler.RemoveItem())
	routerMux.HandleFunc("GET /api/v1/markets", marketHandler.ListMarkets())
	routerMux.HandleFunc("POST /api/v1/markets", marketHandler.CreateMarket())
	routerMux.HandleFunc("PUT /api/v1/markets/{id}", marketHandler.UpdateMarket())
	routerMux.HandleFunc("DELETE /api/v1/markets/{id}", marketHandler.DeleteMarket())
	routerMux.HandleFunc("GET /api/v1/payment-methods", paymentHandler.ListPaymentMethods())
	routerMux.HandleFunc("POST /api/v1/payment-methods", paymentHandler.CreatePaymentMethod())
	routerMux.HandleFunc("PUT /api/v1/payment-methods/{id}", paymentHandler.UpdatePaymentMethod())
	routerMux.HandleFunc("DELETE /api/v1/payment-methods/{id}", paymentHandler.DeletePaymentMethod())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	})(handler)

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

	slog.Warn("Shutdown signal received, stopping the server")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully")
	}
}
