package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"

	"camgate/camera"
	"camgate/collector"
	"camgate/config"
	"camgate/gateway"
	"camgate/playback"
	"camgate/version"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := cli.NewApp()
	app.Name = "camgate"
	app.Usage = "Gateway between browsers and the vendor camera API"
	app.Version = version.Version
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "Path to configuration file",
			Value: "/etc/camgate/config.yaml",
		},
		cli.StringFlag{
			Name:  "listen, l",
			Usage: "Address for the gateway to listen on",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (debug|info|warn|error)",
		},
		cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format (text|json)",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if v := c.String("listen"); v != "" {
		cfg.ListenAddress = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v := c.String("log-format"); v != "" {
		cfg.LogFormat = v
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}

	// Halts before any network call when a required value is missing.
	if err := cfg.Validate(); err != nil {
		return err
	}

	client := camera.NewClient(cfg.Vendor, log.WithField("component", "camera"))
	session := playback.NewSession(client, cfg.Token.ValiditySeconds, log.WithField("component", "playback"))

	var refresher *playback.Refresher
	if !cfg.Token.DisableAutoRefresh {
		refresher = playback.NewRefresher(
			client,
			time.Duration(cfg.Token.ValiditySeconds)*time.Second,
			time.Duration(cfg.Token.RefreshMarginSeconds)*time.Second,
			log.WithField("component", "refresher"),
		)
	}

	gw := gateway.New(session, refresher, cfg.Token.ValiditySeconds, log.WithField("component", "gateway"))
	if refresher != nil {
		gw.Registry().MustRegister(collector.NewRefresherCollector(refresher, log.WithField("component", "collector")))
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddress,
		Handler: gw.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if refresher != nil {
		g.Go(func() error {
			return refresher.Run(ctx)
		})
	}

	g.Go(func() error {
		serveErr := make(chan error, 1)
		go func() {
			log.WithField("address", cfg.ListenAddress).Info("camgate listening")
			serveErr <- srv.ListenAndServe()
		}()

		select {
		case err := <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
