package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sir_venger/mini_nas/internal/app/resthttp"
	"github.com/sir_venger/mini_nas/internal/config"
	"github.com/sir_venger/mini_nas/internal/logger"
	"golang.org/x/sync/errgroup"
)

// main инициализирует файловый HTTP-сервис и обеспечивает корректное завершение по сигналу.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("config: %v", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)

	handler, srv, err := resthttp.NewServer(cfg)
	if err != nil {
		logger.Error("storage root: %v", err)
		os.Exit(1)
	}

	// Фоновый GC по удалению брошенных временных файлов загрузки.
	stopGC := srv.StartGC(cfg.GCTTL(), cfg.GCInterval())
	defer stopGC()

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening on %s (root=%s, strip_root_name=%t)", cfg.ListenAddr, srv.FilesService.Root(), cfg.StripsRootName())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Сценарий graceful shutdown при получении SIGTERM/SIGINT или падении листенера.
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("server stopped")
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server: %v", err)
		stopGC()
		os.Exit(1)
	}
}
