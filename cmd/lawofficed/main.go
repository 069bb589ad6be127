package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/oauth2"

	"github.com/sklowrylaw/website/cmd/lawofficed/handlers"
	"github.com/sklowrylaw/website/pkg/configs/server"
	"github.com/sklowrylaw/website/pkg/conn/db/postgres/pool"
	"github.com/sklowrylaw/website/pkg/domain/auth"
	consultpg "github.com/sklowrylaw/website/pkg/domain/consultation/db/postgres"
	"github.com/sklowrylaw/website/pkg/domain/notification"
	"github.com/sklowrylaw/website/pkg/domain/notification/mail"
	"github.com/sklowrylaw/website/pkg/domain/schema"
	"github.com/sklowrylaw/website/pkg/domain/session"
	sesspg "github.com/sklowrylaw/website/pkg/domain/session/db/postgres"
	userpg "github.com/sklowrylaw/website/pkg/domain/user/db/postgres"
	"github.com/sklowrylaw/website/pkg/echoutil"
	"github.com/sklowrylaw/website/pkg/utils/filewatch"
)

func main() {
	configPath := flag.String("config-path", "", "server config path")
	loglevel := flag.String("loglevel", "", "log level. debug|info|warn|error|off (default: from config)")
	flag.Parse()

	conf, err := server.Load(*configPath)
	if err != nil {
		log.Fatalf("can not read configuration: %s", err)
	}
	level := conf.LogLevel
	if *loglevel != "" {
		level = *loglevel
	}

	e := echo.New()
	echoutil.SetLevel(e, level)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// restart on config change; the process manager brings us back up
	// with the new file.
	watchCtx, cancelWatch, err := filewatch.UntilModifyContext(ctx, *configPath)
	if err != nil {
		log.Fatalf("can not watch configuration: %s", err)
	}
	defer cancelWatch()
	context.AfterFunc(watchCtx, func() {
		log.Println("shutting down (signal or config change)")
		graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := e.Shutdown(graceful); err != nil {
			log.Printf("error on shutdown: %s", err)
		}
	})

	db, err := pool.New(ctx, conf.Database)
	if err != nil {
		log.Fatalf("can not connect to database: %s", err)
	}
	defer db.Close()

	if err := schema.Apply(ctx, db); err != nil {
		log.Fatalf("can not apply database schema: %s", err)
	}

	signer, err := session.NewSigner([]byte(conf.Session.Key))
	if err != nil {
		log.Fatalf("bad session key: %s", err)
	}

	dbcon := consultpg.New(db)
	dbuser := userpg.New(db)
	dbsess := sesspg.New(db)

	var notifier notification.Interface
	if conf.Mail != nil {
		notifier = mail.New(*conf.Mail)
	} else {
		log.Println("mail is not configured; consultation notifications are disabled")
	}

	var provider *auth.Provider
	if f := conf.Federated; f.Enabled() {
		provider = &auth.Provider{
			Name: "federated",
			Config: &oauth2.Config{
				ClientID:     f.ClientId,
				ClientSecret: f.ClientSecret,
				Endpoint:     oauth2.Endpoint{AuthURL: f.AuthURL, TokenURL: f.TokenURL},
				RedirectURL:  f.RedirectURL,
				Scopes:       f.Scopes,
			},
			UserinfoURL: f.UserinfoURL,
		}
	}
	allowed := auth.AllowList(conf.Auth.AllowedEmails)

	// intake: both spellings land on the same handler
	intake := handlers.IntakeHandler(dbcon, notifier)
	e.POST("/api/consultation-requests", intake)
	e.POST("/api/consultation-request", intake)

	// auth
	e.POST("/api/login", handlers.LoginHandler(dbuser, dbsess, signer))
	e.POST("/api/logout", handlers.LogoutHandler(dbsess, signer))
	e.GET("/api/auth/status", handlers.AuthStatusHandler(dbsess, signer))
	e.GET("/api/auth/federated", handlers.FederatedLoginHandler(provider))
	e.GET(
		"/api/auth/federated/callback",
		handlers.FederatedCallbackHandler(provider, allowed, dbuser, dbsess, signer),
	)

	// admin
	admin := handlers.AdminOnly(dbsess, signer)
	e.GET("/api/consultation-requests", handlers.FindConsultationsHandler(dbcon), admin)
	e.PUT("/api/consultation-requests/:id", handlers.UpdateConsultationHandler(dbcon, "id"), admin)
	e.DELETE("/api/consultation-requests/:id", handlers.DeleteConsultationHandler(dbcon, "id"), admin)

	// everything else is the marketing site
	e.GET("/*", handlers.StaticHandler(conf.ContentRoot))

	log.Println("registered routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	if err := e.Start(fmt.Sprintf(":%d", conf.Port)); err != nil {
		e.Logger.Info(err)
	}
}
