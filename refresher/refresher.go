// Package refresher keeps the offline mirror warm: on a cron schedule it
// re-pushes incidents whose last sync failed and then reloads the collection
// from the backend.
package refresher

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/shomrim/patrol-cad-client/store"
)

// Refresher handles the periodic background sync for one session.
type Refresher struct {
	cron  *cron.Cron
	store *store.Store
	spec  string
}

// New creates a refresher with a cron spec such as "@every 5m".
func New(s *store.Store, spec string) *Refresher {
	return &Refresher{
		cron:  cron.New(cron.WithLocation(time.UTC)),
		store: s,
		spec:  spec,
	}
}

// Start begins the scheduled refresh.
func (r *Refresher) Start() {
	_, err := r.cron.AddFunc(r.spec, r.refresh)
	if err != nil {
		zap.S().Errorw("failed to register refresh job",
			"spec", r.spec,
			"error", err,
		)
		return
	}
	r.cron.Start()
	zap.S().Infow("background refresher started", "spec", r.spec)
}

// Stop gracefully stops the refresher, waiting for a running job to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	zap.S().Info("background refresher stopped")
}

func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	r.store.FlushPending(ctx)

	incidents, err := r.store.Load(ctx)
	if err != nil {
		zap.S().Errorw("background refresh failed", "error", err)
		return
	}
	zap.S().Debugw("background refresh complete", "incidents", len(incidents))
}
