package config

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config configuration struct
type Config struct {
	Level           int              `json:"level" yaml:"level"`
	Format          string           `json:"format" yaml:"format"`
	Output          string           `json:"output" yaml:"output"`
	OutputFile      string           `json:"output_file" yaml:"output_file"`
	IndexName       string           `json:"index_name" yaml:"index_name"`
	Desensitization *Desensitization `json:"desensitization" yaml:"desensitization"`
	Elasticsearch   *Elasticsearch   `json:"elasticsearch" yaml:"elasticsearch"`
}

// Desensitization masks configured fields before entries are written.
type Desensitization struct {
	Enabled         bool     `json:"enabled" yaml:"enabled"`
	SensitiveFields []string `json:"sensitive_fields" yaml:"sensitive_fields"`
	MaskChar        string   `json:"mask_char" yaml:"mask_char"`
	PreserveSuffix  int      `json:"preserve_suffix" yaml:"preserve_suffix"`
}

// Elasticsearch ships log entries to an index.
type Elasticsearch struct {
	Addresses []string `json:"addresses" yaml:"addresses"`
	Username  string   `json:"username" yaml:"username"`
	Password  string   `json:"password" yaml:"password"`
}

// BuildIndexName returns the daily log index for t.
func (c *Config) BuildIndexName(t time.Time) string {
	return c.IndexName + "-" + t.Format("2006.01.02")
}

// GetConfig returns the logger configuration
func GetConfig(v *viper.Viper) *Config {
	indexName := strings.ToLower(v.GetString("app_name") + "-" + v.GetString("run_mode") + "-log")
	if v.GetString("logger.index_name") != "" {
		indexName = v.GetString("logger.index_name")
	}

	level := int(logrus.InfoLevel)
	if v.IsSet("logger.level") {
		level = v.GetInt("logger.level")
	}

	format := v.GetString("logger.format")
	if format == "" {
		format = "json"
	}
	output := v.GetString("logger.output")
	if output == "" {
		output = "stdout"
	}

	return &Config{
		Level:           level,
		Format:          format,
		Output:          output,
		OutputFile:      v.GetString("logger.output_file"),
		IndexName:       indexName,
		Desensitization: getDesensitizationConfig(v),
		Elasticsearch:   getElasticsearchConfig(v),
	}
}

func getDesensitizationConfig(v *viper.Viper) *Desensitization {
	d := &Desensitization{
		Enabled:         true,
		SensitiveFields: []string{"password", "api_key", "token", "authorization", "secret"},
		MaskChar:        "*",
		PreserveSuffix:  0,
	}
	if v.IsSet("logger.desensitization.enabled") {
		d.Enabled = v.GetBool("logger.desensitization.enabled")
	}
	if fields := v.GetStringSlice("logger.desensitization.sensitive_fields"); len(fields) > 0 {
		d.SensitiveFields = fields
	}
	if c := v.GetString("logger.desensitization.mask_char"); c != "" {
		d.MaskChar = c
	}
	if v.IsSet("logger.desensitization.preserve_suffix") {
		d.PreserveSuffix = v.GetInt("logger.desensitization.preserve_suffix")
	}
	return d
}

func getElasticsearchConfig(v *viper.Viper) *Elasticsearch {
	if !v.IsSet("logger.elasticsearch") {
		return nil
	}
	return &Elasticsearch{
		Addresses: v.GetStringSlice("logger.elasticsearch.addresses"),
		Username:  v.GetString("logger.elasticsearch.username"),
		Password:  v.GetString("logger.elasticsearch.password"),
	}
}
