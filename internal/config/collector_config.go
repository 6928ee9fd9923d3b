package config

import (
	"errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type CollectorConfig struct {
	// RegionID filters listings to one geography (hh.ru area id, "1" = Moscow).
	RegionID string `mapstructure:"region" validate:"required"`

	// WindowDays is the lookback size of the publication window.
	WindowDays int `mapstructure:"window_days" validate:"gt=0"`

	// PageSize caps how many listings one run consumes.
	PageSize int `mapstructure:"page_size" validate:"gt=0,lte=100"`

	// Schedule is an optional cron expression; empty means a single run.
	Schedule string `mapstructure:"schedule"`

	HhMaxRequestsPerSecond float32 `mapstructure:"hh_max_requests_per_second" validate:"gte=0"`
}

func (config CollectorConfig) validate() error {
	return validator.New().Struct(config)
}

func (config CollectorConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("collector.region", "COLLECTOR_REGION"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("collector.window_days", "COLLECTOR_WINDOW_DAYS"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("collector.page_size", "COLLECTOR_PAGE_SIZE"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("collector.schedule", "COLLECTOR_SCHEDULE"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("collector.hh_max_requests_per_second", "HH_MAX_REQUESTS_PER_SECOND"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
