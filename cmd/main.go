package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/kitchenhub/internal/appcontext"
	"github.com/RoyceAzure/lab/kitchenhub/internal/config"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	cf := config.GetConfig()

	app, err := appcontext.NewApplicationContext(context.Background(), cf)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init application")
		return
	}

	// 設定服務器參數
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cf.ServerPort),
		Handler:           otelhttp.NewHandler(app.Router, cf.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutdownCompleted := make(chan struct{}, 1)
	// 監聽退出訊號
	go func() {
		<-sigChan
		log.Info().Msg("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cf.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}

		if err := app.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("application shutdown error")
		}

		shutdownCompleted <- struct{}{}
	}()

	// 啟動服務
	log.Info().Str("addr", srv.Addr).Msg("server starting")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped unexpectedly")
	}
	<-shutdownCompleted
	log.Info().Msg("closed completed")
}
