package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"github.com/umsproject/ums/internal/config"
	accesslog "github.com/umsproject/ums/internal/logger/adapter/fiber"
	"github.com/umsproject/ums/internal/web/handler"
	"github.com/umsproject/ums/internal/web/handler/groups"
	"github.com/umsproject/ums/internal/web/handler/login"
	"github.com/umsproject/ums/internal/web/handler/permissions"
	"github.com/umsproject/ums/internal/web/handler/roles"
	"github.com/umsproject/ums/internal/web/handler/status"
	"github.com/umsproject/ums/internal/web/handler/users"
)

// CheckAlivePath answers load balancer probes without authentication.
const CheckAlivePath = "/checkalive"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for a termination signal and shuts the server down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive returns 503 once shutdown has begun.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendStatus(fiber.StatusOK)
}

// New creates the web service and registers every route.
// loginStorage keeps the login limiter counters; nil keeps them in memory.
func New(cfg *config.Config, svc *handler.Services, loginStorage fiber.Storage) (*Service, error) {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if svc == nil {
		panic("services cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			ErrorHandler:   ErrorHandler,
		},
	)

	service := &Service{
		cfg:          cfg,
		App:          app,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return ulid.Make().String() },
	}))
	app.Use(Metrics())
	app.Use(accesslog.New(accesslog.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	if cfg.Webserver.AllowOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Webserver.AllowOrigins,
			AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
			AllowCredentials: cfg.Webserver.AllowOrigins != "*",
		}))
	}

	if rl := cfg.Webserver.LoginRateLimit; rl.Enabled {
		app.Use(login.Path, limiter.New(limiter.Config{
			Next:       func(c *fiber.Ctx) bool { return c.Method() != fiber.MethodPost },
			Max:        rl.Max,
			Expiration: rl.Expiration,
			Storage:    loginStorage,
			LimitReached: func(*fiber.Ctx) error {
				return fiber.NewError(fiber.StatusTooManyRequests, "Too many login attempts")
			},
		}))
	}

	app.Get(CheckAlivePath, service.CheckAlive)
	app.Get(MetricsPath, MetricsHandler())

	handlers := []handler.Service{
		&login.Service{},
		&status.Service{},
		&users.Service{},
		&groups.Service{},
		&roles.Service{},
		&permissions.Service{},
	}

	for _, h := range handlers {
		if err := h.Init(app, cfg, svc); err != nil {
			return nil, err //nolint:wrapcheck
		}
	}

	return service, nil
}
