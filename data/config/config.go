package config

import (
	"github.com/spf13/viper"
)

// Config data config struct
type Config struct {
	Search  *Search  `yaml:"search" json:"search"`
	Metrics *Metrics `yaml:"metrics" json:"metrics"`
}

// GetConfig returns data config
func GetConfig(v *viper.Viper) *Config {
	return &Config{
		Search:  getSearchConfig(v),
		Metrics: getMetricsConfig(v),
	}
}
