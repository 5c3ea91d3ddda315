package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/api/handler"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/api/handler/router"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/config"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/account"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/usecases/alerting"
	"github.com/vfg2006/traffic-anomaly-alerts/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	accountService account.AccountService,
	validator middleware.TokenValidator,
	alertScheduler handler.AlertScheduler,
	dashboard alerting.DashboardReader,
	db handler.Pinger,
) (*Server, error) {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(accountService, validator, alertScheduler, dashboard, db),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}, nil
}

// NewHandler monta o roteador com a cadeia de middlewares
func NewHandler(
	accountService account.AccountService,
	validator middleware.TokenValidator,
	alertScheduler handler.AlertScheduler,
	dashboard alerting.DashboardReader,
	db handler.Pinger,
) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(db)...),
		router.WithRoutes(handler.AdAccounts(accountService)...),
		router.WithRoutes(handler.Dashboard(dashboard)...),
		router.WithRoutes(handler.CronJobs(alertScheduler)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.AuthMiddleware(validator),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
