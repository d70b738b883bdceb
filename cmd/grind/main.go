package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harrison/grin/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cmd.Main(ctx, cmd.NewGrindCommand(), cmd.GrindArgsEnv, os.Args[1:])
	stop()
	os.Exit(code)
}
