package app

import (
	"net/http"

	"church-hub-go/internal/config"
	"church-hub-go/internal/db"
	"church-hub-go/internal/domain/authz"
	"church-hub-go/internal/domain/church"
	"church-hub-go/internal/domain/invite"
	"church-hub-go/internal/domain/joinrequest"
	"church-hub-go/internal/domain/roster"
	"church-hub-go/internal/domain/user"
	churchrepo "church-hub-go/internal/repository/postgres/church"
	inviterepo "church-hub-go/internal/repository/postgres/invite"
	joinrequestrepo "church-hub-go/internal/repository/postgres/joinrequest"
	rosterrepo "church-hub-go/internal/repository/postgres/roster"
	userrepo "church-hub-go/internal/repository/postgres/user"
	"church-hub-go/internal/transport/httpserver"
	"church-hub-go/internal/transport/httpserver/handler"
	"church-hub-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	churches := churchrepo.NewPostgres(dbConn)
	invites := inviterepo.NewPostgres(dbConn)
	joinRequests := joinrequestrepo.NewPostgres(dbConn)
	rosters := rosterrepo.NewPostgres(dbConn)
	profiles := userrepo.NewPostgres(dbConn)

	checker := authz.NewChecker(churches)

	churchService := church.NewService(churches, checker)
	inviteService := invite.NewService(invites, checker, cfg.BaseURL)
	joinRequestService := joinrequest.NewService(joinRequests, checker, joinrequest.Limits{
		DenialLimit:   cfg.JoinRequests.DenialLimit,
		DenialWindow:  cfg.JoinRequests.DenialWindow,
		RequestLimit:  cfg.JoinRequests.RequestLimit,
		RequestWindow: cfg.JoinRequests.RequestWindow,
	}, log)
	rosterService := roster.NewService(rosters, checker)
	userService := user.NewService(profiles)

	log.Info("app: initializing router")
	handlers := handler.New(churchService, inviteService, joinRequestService, rosterService, log)
	router := httpserver.NewRouter(cfg, handlers, userService, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
