// Package profile собирает сервис профилей: хранилище, кеш, сервис
// пользователей, HTTP- и gRPC-серверы, и управляет их жизненным циклом.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"
	"google.golang.org/grpc"

	"github.com/magabrotheeeer/profile-service/internal/cache"
	"github.com/magabrotheeeer/profile-service/internal/config"
	grpchealth "github.com/magabrotheeeer/profile-service/internal/grpc/health"
	"github.com/magabrotheeeer/profile-service/internal/http/handlers/health"
	"github.com/magabrotheeeer/profile-service/internal/lib/jwt"
	"github.com/magabrotheeeer/profile-service/internal/lib/password"
	"github.com/magabrotheeeer/profile-service/internal/lib/sl"
	"github.com/magabrotheeeer/profile-service/internal/migrations"
	"github.com/magabrotheeeer/profile-service/internal/rabbitmq"
	"github.com/magabrotheeeer/profile-service/internal/services/users"
	"github.com/magabrotheeeer/profile-service/internal/storage/mongodb"
	"github.com/magabrotheeeer/profile-service/internal/storage/postgresql"
)

const shutdownTimeout = 15 * time.Second

// Repository — хранилище пользователей вместе с управлением соединением.
type Repository interface {
	users.Repository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// App владеет всеми долгоживущими клиентами и серверами.
type App struct {
	server     *http.Server
	grpcServer *grpc.Server
	grpcHealth *grpchealth.Server
	listener   net.Listener
	logger     *slog.Logger
	repo       Repository
	cache      *cache.Cache
	amqpConn   *amqp.Connection
	amqpCh     *amqp.Channel
}

// New подключается к зависимостям, применяет миграции и строит серверы.
// При ошибке уже открытые соединения закрываются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{logger: logger}
	if err := app.connect(ctx, cfg); err != nil {
		app.close()
		return nil, err
	}

	var publisher users.Publisher
	if app.amqpCh != nil {
		publisher = rabbitmq.NewPublisher(app.amqpCh, cfg.RabbitExchange, cfg.RabbitRoutingKey)
	} else {
		logger.Info("rabbitmq url is empty, user.created events are disabled")
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	userCache := cache.NewUserCache(app.cache, logger, cfg.UserTTL, cfg.ListTTL)
	userService := users.NewService(app.repo, userCache, password.NewHasher(cfg.BcryptCost), jwtMaker, publisher, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, Routes{
		Log:      logger,
		Users:    userService,
		Verifier: jwtMaker,
		Checks: map[string]health.Pinger{
			"storage": app.repo,
			"cache":   app.cache,
		},
		Auth:           cfg.RouteAuth,
		RequestTimeout: cfg.RequestTimeout,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	if cfg.AddressGRPC != "" {
		lis, err := net.Listen("tcp", cfg.AddressGRPC)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("profile.New: listen grpc: %w", err)
		}
		app.listener = lis
		app.grpcServer = grpc.NewServer()
		app.grpcHealth = grpchealth.NewServer(logger, map[string]grpchealth.Pinger{
			"storage": app.repo,
			"cache":   app.cache,
		}, 10*time.Second)
		app.grpcHealth.Register(app.grpcServer)
	}

	return app, nil
}

// connect открывает хранилище, Redis и, если задан URL, канал RabbitMQ.
func (a *App) connect(ctx context.Context, cfg *config.Config) error {
	repo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	a.repo = repo

	if a.cache, err = cache.InitServer(ctx, cfg.RedisConnection); err != nil {
		return err
	}

	if cfg.RabbitURL == "" {
		return nil
	}
	if a.amqpConn, err = rabbitmq.Connect(cfg.RabbitURL, 5, 2*time.Second); err != nil {
		return err
	}
	if a.amqpCh, err = rabbitmq.SetupChannel(a.amqpConn, cfg.RabbitExchange); err != nil {
		return err
	}
	return nil
}

func openRepository(ctx context.Context, cfg *config.Config) (Repository, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgresql.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := migrations.RunPostgres(db.DB, cfg.MigrationsPath); err != nil {
			_ = db.Close(ctx)
			return nil, err
		}
		return db, nil
	default:
		if err := migrations.RunMongo(cfg.MongoURI, cfg.MongoDatabase, cfg.MigrationsPath); err != nil {
			return nil, err
		}
		db, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return db, nil
	}
}

// Run запускает серверы и блокируется до отмены ctx или ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if a.grpcServer != nil {
		go a.grpcHealth.Watch(watchCtx)
		go func() {
			a.logger.Info("gRPC health server listening on", slog.String("address", a.listener.Addr().String()))
			if err := a.grpcServer.Serve(a.listener); err != nil {
				errCh <- err
			}
		}()
	}

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
	}

	a.logger.Info("shutting down gracefully")
	timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(timeoutCtx); err != nil {
		a.logger.Error("failed to shutdown HTTP server", sl.Err(err))
		runErr = errors.Join(runErr, err)
	}
	if a.grpcServer != nil {
		a.grpcServer.GracefulStop()
	}
	a.close()
	return runErr
}

func (a *App) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.amqpCh != nil {
		if err := a.amqpCh.Close(); err != nil {
			a.logger.Warn("failed to close amqp channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Warn("failed to close amqp connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis client", sl.Err(err))
		}
	}
	if a.repo != nil {
		if err := a.repo.Close(ctx); err != nil {
			a.logger.Warn("failed to close storage", sl.Err(err))
		}
	}
}
