package logger

import (
	"context"
	"os"
	"time"

	"github.com/ncobase/talentsearch/data/elasticsearch/client"
	"github.com/ncobase/talentsearch/logging/logger/config"
	"github.com/sirupsen/logrus"
)

// ElasticSearchHook represents an Elasticsearch log hook
type ElasticSearchHook struct {
	client *client.Client
	config *config.Config
	levels []logrus.Level
}

// NewElasticSearchHook creates new Elasticsearch hook shipping entries at
// warn level and above.
func NewElasticSearchHook(c *client.Client, cfg *config.Config) *ElasticSearchHook {
	return &ElasticSearchHook{
		client: c,
		config: cfg,
		levels: []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel},
	}
}

func (h *ElasticSearchHook) Levels() []logrus.Level {
	return h.levels
}

// Fire sends log entry to Elasticsearch
func (h *ElasticSearchHook) Fire(entry *logrus.Entry) error {
	index := "default-log"
	if h.config != nil && h.config.IndexName != "" {
		index = h.config.BuildIndexName(entry.Time)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.client.IndexDocument(ctx, index, prepareLogDocument(entry))
}

// prepareLogDocument prepares the log document structure
func prepareLogDocument(entry *logrus.Entry) map[string]any {
	doc := make(map[string]any, len(entry.Data)+4)

	for key, value := range entry.Data {
		if err, ok := value.(error); ok {
			value = err.Error()
		}
		doc[key] = value
	}

	doc["@timestamp"] = entry.Time.Format(time.RFC3339)
	doc["level"] = entry.Level.String()
	doc["message"] = entry.Message
	if hostname, err := os.Hostname(); err == nil {
		doc["hostname"] = hostname
	}

	return doc
}
