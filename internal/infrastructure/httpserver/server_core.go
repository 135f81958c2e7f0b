package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/sanatanigyan/granthalaya/internal/core/ports"
	customMiddleware "github.com/sanatanigyan/granthalaya/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	Environment    string
}

type ServerDeps struct {
	CatalogService  ports.CatalogService
	MessageService  ports.MessageService
	SecurityService ports.SecurityService
	JapService      ports.JapService
	HealthCheckers  []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	catalogSvc     ports.CatalogService
	messageSvc     ports.MessageService
	securitySvc    ports.SecurityService
	japSvc         ports.JapService
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		catalogSvc:     deps.CatalogService,
		messageSvc:     deps.MessageService,
		securitySvc:    deps.SecurityService,
		japSvc:         deps.JapService,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
