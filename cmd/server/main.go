package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/cinesuggest/web/internal/client"
	"github.com/cinesuggest/web/internal/config"
	"github.com/cinesuggest/web/internal/handler"
	"github.com/cinesuggest/web/internal/logging"
	"github.com/cinesuggest/web/internal/middleware"
	"github.com/cinesuggest/web/internal/model"
	"github.com/cinesuggest/web/internal/service"
	"github.com/cinesuggest/web/internal/session"
	"github.com/cinesuggest/web/internal/view"
	ws "github.com/cinesuggest/web/internal/websocket"
	"github.com/cinesuggest/web/internal/worker"
	"github.com/cinesuggest/web/pkg/response"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("failed to load config")
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Server.LogLevel,
		Format: cfg.Server.LogFormat,
	})

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logging.Warn().Err(err).Msg("redis not available")
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	validate := validator.New()

	hub := ws.NewHub()
	go hub.Run()

	// Movie backend behind a circuit breaker
	apiClient := client.NewMovieAPIClient(&cfg.Backend)
	if !apiClient.IsConfigured() {
		logging.Warn().Msg("movie backend URL not configured")
	}
	api := client.NewBreakerClient(apiClient, &cfg.Breaker)

	moods := model.NewMoodCatalog(model.DefaultMoods)
	store := session.NewRedisStore(redisClient, cfg.Session.TTL)
	ctrl := service.NewController(api, store, hub, moods)

	if cfg.Backend.LoadMoods {
		loadCtx, cancel := context.WithTimeout(ctx, cfg.Backend.Timeout)
		if err := ctrl.LoadMoods(loadCtx); err != nil {
			logging.Warn().Err(err).Msg("using built-in mood list")
		}
		cancel()
	}

	var posters *service.PosterService
	if cfg.Posters.ProbeEnabled {
		posters = service.NewPosterService(redisClient, asynqClient, &cfg.Posters)
		ctrl.WithPosters(posters)
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		logging.Error().Err(err).Msg("failed to load templates")
		os.Exit(1)
	}

	handlers := &handler.Handlers{
		Page:    handler.NewPageHandler(ctrl, renderer, validate),
		Results: handler.NewResultsHandler(ctrl, renderer, validate),
		Grid:    handler.NewGridHandler(ctrl, renderer, validate),
		WS:      handler.NewWSHandler(ctrl, hub),
	}

	sessions := middleware.NewSessionMiddleware(&cfg.Session)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		BodyLimit:    64 * 1024,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${status} - ${latency} ${method} ${path}\n",
		Output: logging.Writer(),
	}))

	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(view.StaticFS()),
		MaxAge: 3600,
	}))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handler.RegisterRoutes(app, handlers, sessions, rateLimiter, cfg.RateLimit)

	if posters != nil {
		go startWorkerServer(cfg, redisOpt, posters, ctrl)
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logging.Info().Msg("shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logging.Error().Err(err).Msg("server shutdown error")
		}
	}()

	addr := ":" + cfg.Server.Port
	logging.Info().Str("addr", addr).Str("backend", cfg.Backend.BaseURL).Msg("server starting")
	if err := app.Listen(addr); err != nil {
		logging.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
}

func startWorkerServer(cfg *config.Config, redisOpt asynq.RedisClientOpt, posters *service.PosterService, ctrl *service.Controller) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: cfg.Worker.Concurrency,
			Queues: map[string]int{
				service.PosterQueue: 1,
			},
			Logger: asynqLogger{},
		},
	)

	posterWorker := worker.NewPosterWorker(posters, ctrl)

	mux := asynq.NewServeMux()
	mux.HandleFunc(service.TaskTypePosterProbe, posterWorker.ProcessTask)

	if err := srv.Run(mux); err != nil {
		logging.Error().Err(err).Msg("asynq worker error")
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= fiber.StatusInternalServerError {
		logging.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	}
	return response.Error(c, code, response.CodeServiceError, message, nil)
}
