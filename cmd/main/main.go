package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stellarsplit.app/payment-uri/config"
	"stellarsplit.app/payment-uri/log"
	"stellarsplit.app/payment-uri/server"
	"stellarsplit.app/payment-uri/tracing"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	log.Infof("payment_uri %v", version)
	cfg, err := config.ParseConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("get config error: %v", err)
	}

	if err := log.SetLevel(cfg.LogLevel); err != nil {
		log.Warnf("unknown log level %q: %v", cfg.LogLevel, err)
	}

	tracerShutdownFunc := tracing.InitGlobalTracer(cfg.JaegerConfig)
	defer tracerShutdownFunc()

	srv := server.New(cfg)
	failed := make(chan error, 1)
	go func() {
		failed <- srv.Start()
	}()

	select {
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		srv.Shutdown(ctx)
	case err := <-failed:
		if err != nil {
			log.Errorf("Error starting server: %v", err)
		}
	}
}
