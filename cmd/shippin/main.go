package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/django/v3"
	gconfig "github.com/goliatone/go-config/config"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	mflash "github.com/goliatone/go-router/middleware/flash"
	"github.com/shippin/go-shippin"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Debug),
		glog.WithName("shippin"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg := gconfig.New(&AppConfig{}).
		WithLogger(lgr.GetLogger("config"))

	ctx := context.Background()
	if err := cfg.Load(ctx); err != nil {
		panic(err)
	}

	conf := cfg.Raw()

	if conf.GetDebug() {
		fmt.Println("============")
		fmt.Println(print.MaybeHighlightJSON(conf))
		fmt.Println("============")
	}

	client := shippin.NewClientFromConfig(conf,
		shippin.WithClientLogger(lgr.GetLogger("client")),
	)

	sessions := shippin.NewSessionStore()

	noticeLogger := lgr.GetLogger("notices")
	notices := shippin.NoticeSinkFunc(func(ctx context.Context, notice shippin.Notice) error {
		noticeLogger.Info("notice", "level", notice.Level, "message", notice.Message, "role", notice.Role)
		return nil
	})

	auther := shippin.NewAuthenticator(client, sessions).
		WithLogger(lgr.GetLogger("auth")).
		WithNoticeSink(notices)

	if notice := conf.GetLatencyNotice(); notice != "" {
		auther.WithLatencyNotice(notice)
	}

	shipments := shippin.NewShipmentService(client, sessions).
		WithLogger(lgr.GetLogger("shipments"))

	engine := django.New("./views", ".html")

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:      true,
			EnablePrintRoutes: conf.GetDebug(),
			StrictRouting:     false,
			PassLocalsToViews: true,
			Views:             engine,
		}))
	})

	srv.Router().WithLogger(lgr.GetLogger("router"))
	srv.Router().Use(mflash.New(mflash.ConfigDefault))

	srv.Router().Get("/", func(ctx router.Context) error {
		return ctx.Render("home", router.ViewContext{
			"roles": shippin.AllRoles(),
		})
	})

	shippin.RegisterAuthRoutes(srv.Router(),
		shippin.WithAuther(auther),
		shippin.WithControllerClient(client),
		shippin.WithSessions(sessions),
		shippin.WithShipments(shipments),
		shippin.WithControllerLogger(lgr.GetLogger("ctrl")),
	)

	srv.Serve(conf.GetServerAddress())

	WaitExitSignal()
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
