package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/shomrim/patrol-cad-client/backend"
	"github.com/shomrim/patrol-cad-client/cache"
	"github.com/shomrim/patrol-cad-client/config"
	"github.com/shomrim/patrol-cad-client/dashboard"
	"github.com/shomrim/patrol-cad-client/export"
	"github.com/shomrim/patrol-cad-client/refresher"
	"github.com/shomrim/patrol-cad-client/session"
)

func main() {
	cfg := config.New()

	c, err := cache.Open(cfg.CachePath)
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	client := backend.New(cfg.BackendURL, cfg.CountryCode, cfg.RequestTimeout)
	manager := &session.Manager{
		Auth:      client,
		Users:     client,
		Incidents: client,
		Contacts:  client,
		Cache:     c,
	}

	sess, err := manager.Restore()
	if err != nil {
		zap.S().Fatalw("no cached session; log in from the patrol app first",
			"error", err,
		)
	}

	ctx := context.Background()
	incidents, err := sess.Store().Load(ctx)
	if err != nil {
		zap.S().Fatalw("failed to load incidents", "error", err)
	}

	if cfg.ExportPath != "" {
		exportAndExit(cfg.ExportPath, sess)
	}

	counts := dashboard.Recompute(incidents, sess.User().Name)
	zap.S().Infow("patrol-cad-client is up and running",
		"user", sess.User().Name,
		"incidents", len(incidents),
		"pending", counts.Pending,
		"started", counts.Started,
		"invitations", counts.Invitation,
		"unread", dashboard.UnreadCount(sess.Store().Notifications()),
	)

	r := refresher.New(sess.Store(), cfg.RefreshSpec)
	r.Start()
	defer r.Stop()

	stop, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-stop.Done()
}

func exportAndExit(path string, sess *session.Session) {
	f, err := os.Create(path)
	if err != nil {
		zap.S().Fatalw("failed to create export file", "error", err)
	}
	if err := export.WriteCSV(f, sess.Store().Incidents()); err != nil {
		f.Close()
		zap.S().Fatalw("failed to export incidents", "error", err)
	}
	if err := f.Close(); err != nil {
		zap.S().Fatalw("failed to flush export file", "error", err)
	}
	zap.S().Infow("incidents exported", "path", path)
	os.Exit(0)
}
