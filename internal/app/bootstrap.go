package app

import (
	"context"
	"fmt"
	"strings"

	"facility-registry/internal/config"
	"facility-registry/internal/delivery/http/handler"
	"facility-registry/internal/delivery/http/middleware"
	"facility-registry/internal/delivery/http/routes"
	"facility-registry/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application around an already wired container.
func New(c *Container) *App {
	errMw := middleware.NewErrorMiddleware(c.Logger, c.Config.App.IsProduction())

	f := fiber.New(fiber.Config{
		AppName:      c.Config.App.AppName,
		ErrorHandler: errMw.Handle,
	})

	f.Use(middleware.NewAccessLogMiddleware(c.Logger, c.Metrics).Middleware())
	f.Use(errMw.Middleware())

	registry := &routes.Registry{
		Health:       handler.NewHealthHandler(c.DB, c.Hub.ClientCount),
		Autocomplete: handler.NewAutocompleteHandler(c.Autocomplete),
		Master:       handler.NewMasterHandler(c.Master),
		Suggestion:   handler.NewSuggestionHandler(c.Suggestions),
		Auth:         handler.NewAuthHandler(c.Auth),
		WS:           ws.NewHandler(c.Hub, c.JWT, c.Logger),
		AdminAuth:    middleware.NewAdminAuth(c.JWT),
		Metrics:      c.Metrics,
	}
	registry.Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, starts the websocket hub and returns the app
// with a cleanup func that stops the hub and releases connections.
func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
