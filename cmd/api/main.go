package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/storefront-admin/internal/cache"
	"github.com/imrishuroy/storefront-admin/internal/config"
	"github.com/imrishuroy/storefront-admin/internal/handlers"
	"github.com/imrishuroy/storefront-admin/internal/store"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handlers.RequestID())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterDashboardRoutes(r, cfg)
	handlers.RegisterProductRoutes(r, cfg)
	handlers.RegisterOrdersRoutes(r, cfg)
	handlers.RegisterCustomerRoutes(r, cfg)

	return r
}

// newDocumentCache picks the Redis-backed cache when REDIS_ADDR is set,
// otherwise the in-process one.
func newDocumentCache() cache.DocumentCache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return cache.NewMemory()
	}
	rc, err := cache.NewRedis(addr, 15*time.Minute)
	if err != nil {
		log.Fatalf("failed to init redis cache: %v", err)
	}
	return rc
}

func main() {
	config.LoadEnv()

	storeCfg, err := store.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load store config: %v", err)
	}
	client, err := store.NewClient(storeCfg)
	if err != nil {
		log.Fatalf("failed to init store client: %v", err)
	}

	cfg := handlers.HandlerConfig{
		Client: client,
		Cache:  newDocumentCache(),
	}

	r := setupRouter(cfg)

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if os.Getenv("RUN_LOCAL") == "true" {
		addr := ":8080"
		log.Printf("running local server on %s", addr)
		if err := r.Run(addr); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
