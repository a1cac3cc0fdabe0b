package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/templui/portfolio/cmd/blog/cmd"
	"github.com/templui/portfolio/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cmd.RootCmd().ExecuteContext(ctx)

	stop()
	logger.Flush()
	if err != nil {
		os.Exit(1)
	}
}
