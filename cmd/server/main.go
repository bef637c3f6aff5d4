package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Gunvolt24/adbridge/config"
	"github.com/Gunvolt24/adbridge/internal/app"
	"github.com/Gunvolt24/adbridge/internal/kafka"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, cleanup, err := app.Bootstrap(ctx, &cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
		os.Exit(1)
	}

	runErr := application.Run(ctx)
	cleanup()

	if runErr != nil {
		// нездоровый процесс перезапускает оркестратор
		code := 1
		if errors.Is(runErr, kafka.ErrUnhealthy) {
			code = 3
		}
		fmt.Fprintf(os.Stderr, "stopped: %v\n", runErr)
		os.Exit(code)
	}
}
