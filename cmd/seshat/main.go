package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/flarebyte/seshat-compendium/cmd/seshat/root"
)

type exitCoder interface {
	ExitCode() int
}

func main() {
	// An interrupt cancels the run; the aggregator reports it as cancelled.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := root.Execute(ctx, os.Args[1:])
	stop()
	if err == nil {
		return
	}
	msg := strings.Join(strings.Fields(err.Error()), " ")
	if msg == "" {
		msg = "error"
	}
	_, _ = os.Stderr.WriteString(msg + "\n")
	code := 1
	if ec, ok := err.(exitCoder); ok && ec.ExitCode() != 0 {
		code = ec.ExitCode()
	}
	os.Exit(code)
}
