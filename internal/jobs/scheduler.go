// Package jobs runs the background snapshot schedule for file-backed
// deployments.
package jobs

import (
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Snapshotter copies a backend's documents into a directory. The file
// store implements it; the postgres store has its own backup story so the
// scheduler is simply not started there.
type Snapshotter interface {
	Snapshot(dir string) error
}

type Scheduler struct {
	cron   *cron.Cron
	src    Snapshotter
	dstDir string
	spec   string
	log    zerolog.Logger
}

func NewScheduler(src Snapshotter, dstDir, spec string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		src:    src,
		dstDir: dstDir,
		spec:   spec,
		log:    log,
	}
}

func (s *Scheduler) Start() error {
	if s.src == nil {
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.snapshot); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop waits for any in-flight snapshot to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) snapshot() {
	dir := filepath.Join(s.dstDir, time.Now().UTC().Format("20060102-150405"))
	if err := s.src.Snapshot(dir); err != nil {
		s.log.Error().Err(err).Str("dir", dir).Msg("snapshot failed")
		return
	}
	s.log.Info().Str("dir", dir).Msg("snapshot written")
}
