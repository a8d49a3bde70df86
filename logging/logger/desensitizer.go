package logger

import (
	"strings"

	"github.com/ncobase/talentsearch/logging/logger/config"
	"github.com/sirupsen/logrus"
)

// Desensitizer masks sensitive log fields. Matching is by substring of
// the lower-cased field name, so "db_password" matches "password".
type Desensitizer struct {
	config *config.Desensitization
}

// NewDesensitizer creates a new desensitizer instance
func NewDesensitizer(cfg *config.Desensitization) *Desensitizer {
	return &Desensitizer{config: cfg}
}

// Levels returns all log levels
func (d *Desensitizer) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire masks sensitive fields in place before formatters and other hooks run.
func (d *Desensitizer) Fire(entry *logrus.Entry) error {
	entry.Data = d.DesensitizeFields(entry.Data)
	return nil
}

// DesensitizeFields processes log fields and masks sensitive data
func (d *Desensitizer) DesensitizeFields(fields logrus.Fields) logrus.Fields {
	if d.config == nil || !d.config.Enabled {
		return fields
	}

	result := make(logrus.Fields, len(fields))
	for key, value := range fields {
		if s, ok := value.(string); ok && d.isSensitive(key) {
			result[key] = d.mask(s)
			continue
		}
		result[key] = value
	}
	return result
}

func (d *Desensitizer) isSensitive(key string) bool {
	key = strings.ToLower(key)
	for _, field := range d.config.SensitiveFields {
		if field != "" && strings.Contains(key, strings.ToLower(field)) {
			return true
		}
	}
	return false
}

func (d *Desensitizer) mask(value string) string {
	if value == "" {
		return value
	}
	char := d.config.MaskChar
	if char == "" {
		char = "*"
	}
	keep := d.config.PreserveSuffix
	if keep < 0 || keep >= len(value) {
		keep = 0
	}
	return strings.Repeat(char, len(value)-keep) + value[len(value)-keep:]
}
