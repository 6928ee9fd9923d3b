package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"strings"
)

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

// DSN renders the postgres connection string.
func (config DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		config.Host, config.Port, config.User, config.Password, config.Name)
}

func (config DBConfig) validate() error {

	var missingFields []string

	if config.Host == "" {
		missingFields = append(missingFields, "host")
	}

	if config.Port == 0 {
		missingFields = append(missingFields, "port")
	}

	if config.User == "" {
		missingFields = append(missingFields, "user")
	}

	if config.Password == "" {
		missingFields = append(missingFields, "password")
	}

	if config.Name == "" {
		missingFields = append(missingFields, "name")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	return nil
}

func (config DBConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("db.host", "DB_HOST"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("db.port", "DB_PORT"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("db.user", "DB_USER"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("db.password", "DB_PASSWORD"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("db.name", "DB_NAME"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
