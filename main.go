package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ardnew/tpp/cli"
	"github.com/ardnew/tpp/log"
)

func main() {
	// Interrupt cancels rendering; a partial output file is never written.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.Run(ctx, os.Exit, os.Args[1:]...)

	stop()

	if err != nil {
		log.Error("tpp failed", slog.Any("error", err))
		os.Exit(1)
	}
}
