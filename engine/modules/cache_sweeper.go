package modules

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Luismorlan/newsdash/engine"
	Logger "github.com/Luismorlan/newsdash/utils/log"
)

const DefaultSweepInterval = time.Hour

type CacheSweeperConfig struct {
	Name string
	// Sweep once on start and every other interval, DefaultSweepInterval
	// when not positive.
	Interval time.Duration
}

type ArticleCacheCleaner interface {
	CleanupOldCache() (int64, error)
}

// CacheSweeper periodically deletes expired article cache rows.
type CacheSweeper struct {
	engine.Module

	Config CacheSweeperConfig

	cleaner ArticleCacheCleaner
}

func NewCacheSweeper(config CacheSweeperConfig, cleaner ArticleCacheCleaner) *CacheSweeper {
	return &CacheSweeper{Config: config, cleaner: cleaner}
}

func (s *CacheSweeper) sweep() {
	deleted, err := s.cleaner.CleanupOldCache()
	logger := Logger.Log.WithField("module", s.Name())
	if err != nil {
		logger.Errorln("fail to sweep article cache: ", err)
		return
	}
	logger.WithFields(logrus.Fields{"deleted": deleted}).Infoln("swept article cache")
}

func (s *CacheSweeper) RunModule(ctx context.Context) error {
	s.sweep()

	interval := s.Config.Interval
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *CacheSweeper) Name() string {
	return s.Config.Name
}

func (s *CacheSweeper) Shutdown() {}
