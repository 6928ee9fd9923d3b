package services

import (
	"context"

	"github.com/akazarov/hh-collector/internal/logger"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// CollectionScheduler reruns the collector on a cron schedule. Without a
// schedule the collector is invoked once from main instead.
type CollectionScheduler struct {
	cron *cron.Cron
}

func NewCollectionScheduler(collector *Collector, spec string) (*CollectionScheduler, error) {

	s := &CollectionScheduler{cron: cron.New()}

	_, err := s.cron.AddFunc(spec, func() {
		if err := collector.Collect(context.Background()); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeHhApi).Errorf("collection run failed: %v", err)
		}
	})
	if err != nil {
		return nil, err
	}

	s.cron.Start()
	log.Infof("collection scheduler started with spec %q", spec)
	return s, nil
}

func (s *CollectionScheduler) Stop() {
	s.cron.Stop()
}
