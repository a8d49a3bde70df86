package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/talentsearch/concurrency"
	"github.com/ncobase/talentsearch/config"
	"github.com/ncobase/talentsearch/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the HTTP server command
func NewServeCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the talent search HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(*configFile)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			gin.SetMode(ginMode(a.cfg.RunMode))

			h := server.NewHandler(a.searcher, a.client, a.collector, a.cfg.Data.Search.DefaultIndexes, a.logger)
			if n := a.cfg.Server.MaxConcurrentSearches; n > 0 {
				limiter, err := concurrency.NewLimiter(n, a.cfg.Server.AcquireTimeout)
				if err != nil {
					return err
				}
				h.SetLimiter(limiter)
			}
			if a.cfg.Viper.ConfigFileUsed() != "" {
				config.Watch(a.cfg, func(next *config.Config) {
					h.SetDefaultIndexes(next.Data.Search.DefaultIndexes)
					a.logger.EntryWithFields(context.Background(), logrus.Fields{
						"default_indexes": next.Data.Search.DefaultIndexes,
					}).Info("configuration reloaded")
				})
			}

			a.logger.EntryWithFields(ctx, logrus.Fields{
				"engines":        a.client.Engines(),
				"default_engine": a.cfg.Data.Search.DefaultEngine,
			}).Info("talent search engines registered")
			return server.New(a.cfg.Server, h, a.logger).Run(ctx)
		},
	}
}

func ginMode(runMode string) string {
	switch runMode {
	case gin.DebugMode, gin.TestMode:
		return runMode
	}
	return gin.ReleaseMode
}
