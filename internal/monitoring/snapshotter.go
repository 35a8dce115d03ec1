package monitoring

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/trackfolio/trackfolio-be/internal/store"
)

// Snapshotter periodically copies the flat-file store's data files into a
// backup directory on a cron schedule. Only used with the file driver; the
// SQLite backend keeps its durability in the database file itself.
type Snapshotter struct {
	dataDir     string
	snapshotDir string
	schedule    cron.Schedule
	next        time.Time
	ticker      *time.Ticker
	done        chan bool
}

// NewSnapshotter creates a Snapshotter for the given cron expression.
func NewSnapshotter(dataDir, snapshotDir, cronExpr string) (*Snapshotter, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot schedule %q: %w", cronExpr, err)
	}
	if err := os.MkdirAll(snapshotDir, 0o755); err != nil {
		return nil, err
	}
	return &Snapshotter{
		dataDir:     dataDir,
		snapshotDir: snapshotDir,
		schedule:    schedule,
		next:        schedule.Next(time.Now()),
		done:        make(chan bool),
	}, nil
}

// Run starts the snapshotter's ticking loop.
func (s *Snapshotter) Run() {
	log.Info().Time("next", s.next).Msg("Starting store snapshotter")
	s.ticker = time.NewTicker(30 * time.Second)
	defer s.ticker.Stop()

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping store snapshotter")
			return
		case now := <-s.ticker.C:
			if now.After(s.next) {
				s.snapshot(now)
				s.next = s.schedule.Next(now)
			}
		}
	}
}

// Stop halts the snapshotter.
func (s *Snapshotter) Stop() {
	s.done <- true
}

func (s *Snapshotter) snapshot(now time.Time) {
	stamp := now.UTC().Format("20060102T150405Z")
	for _, name := range []string{store.UsersFile, store.AssetsFile, store.EventsFile} {
		src := filepath.Join(s.dataDir, name)
		data, err := os.ReadFile(src)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			log.Error().Err(err).Str("file", src).Msg("Snapshot read failed")
			continue
		}
		dst := filepath.Join(s.snapshotDir, stamp+"-"+name)
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			log.Error().Err(err).Str("file", dst).Msg("Snapshot write failed")
			continue
		}
	}
	log.Info().Str("stamp", stamp).Msg("Store snapshot written")
}
