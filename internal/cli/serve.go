package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/loanlens/loanlens/internal/banks"
	"github.com/loanlens/loanlens/internal/cache"
	"github.com/loanlens/loanlens/internal/server"
)

// version is set at build time via -ldflags.
var version = "dev"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculators over a JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openExpenseStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		var scheduleCache cache.Cache
		if conf.Cache.RedisAddr != "" {
			redisCache := cache.NewRedis(conf.Cache.RedisAddr, time.Duration(conf.Cache.TTLMinutes)*time.Minute)
			defer func() { _ = redisCache.Close() }()
			scheduleCache = redisCache
			logger.Info("using Redis schedule cache",
				zap.String("op", "cli.serve"),
				zap.String("addr", conf.Cache.RedisAddr),
			)
		} else {
			scheduleCache = cache.NewMemory()
		}

		handler := server.NewHandler(server.Options{
			Logger:     logger,
			Comparator: banks.NewComparator(logger, conf.BankOffers()),
			Expenses:   store,
			Cache:      scheduleCache,
			Bounds:     conf.ValidationBounds(),
			Version:    version,
		})

		httpServer := &http.Server{
			Addr:    conf.Server.Address,
			Handler: server.NewRouter(handler, conf.Server.AllowedOrigins),
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		group, ctx := errgroup.WithContext(ctx)
		group.Go(func() error {
			logger.Info("HTTP server listening",
				zap.String("op", "cli.serve"),
				zap.String("address", conf.Server.Address),
			)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		group.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		})

		return group.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
