package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ytget/score-downloader/internal/config"
	"github.com/ytget/score-downloader/internal/logger"
	"github.com/ytget/score-downloader/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.LoadServer(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.GetZapLogger()

	srv := server.New(server.Config{
		Host:         cfg.HTTP.Host,
		Port:         cfg.HTTP.Port,
		Root:         cfg.HTTP.Root,
		MetricsAddr:  cfg.HTTP.MetricsAddr,
		ReadTimeout:  cfg.HTTP.GetReadTimeout(),
		WriteTimeout: cfg.HTTP.GetWriteTimeout(),
		IdleTimeout:  cfg.HTTP.GetIdleTimeout(),
	}, log)

	if err := srv.Listen(); err != nil {
		if server.IsAddrInUse(err) {
			log.Error("port is already in use", zap.Int("port", cfg.HTTP.Port))
		}
		log.Error("could not start server", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	fmt.Printf("Serving %s at %s\nPress Ctrl+C to stop.\n", cfg.HTTP.Root, srv.URL())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			log.Error("server stopped", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.GetShutdownTimeout())
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
	<-errCh
	log.Info("server stopped")
}
