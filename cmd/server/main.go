package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/immodash/immodash/modules/portfolio"
	"github.com/immodash/immodash/pkg/configuration"
	"github.com/immodash/immodash/pkg/middleware"
	"github.com/immodash/immodash/pkg/migrations"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}
	defer pool.Close()

	manager := migrations.NewManager(pool, logger)

	router := mux.NewRouter()
	router.Use(middleware.WithLogger(logger), middleware.WithPool(pool))
	if err := portfolio.NewModule().Register(router, manager, logger); err != nil {
		log.Fatalf("failed to register portfolio module: %v", err)
	}

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), time.Minute)
	defer migrateCancel()
	if err := manager.Apply(migrateCtx); err != nil {
		logger.WithError(err).Fatal("failed to apply migrations")
	}

	srv := &http.Server{
		Addr:              conf.SocketAddress,
		Handler:           gziphandler.GzipHandler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("listening on %s", conf.SocketAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-shutdownCtx.Done()
	logger.Info("shutting down")

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
	configuration.Use().Unload()
}
