package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
)

// setupSignalHandler creates a context that is cancelled on the first
// interrupt. A second interrupt exits immediately, which is the only way out
// of a prompt that is blocked reading a pipe.
func setupSignalHandler(logger *log.Logger) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("Received signal, finishing the current game", "signal", sig.String())
		cancel()
		sig = <-sigChan
		logger.Warn("Received second signal, exiting", "signal", sig.String())
		os.Exit(1)
	}()

	return ctx
}
