package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"floodex/internal/dashboard"
)

func main() {
	url := flag.String("url", "ws://localhost:8080/ws", "Websocket URL of the exercise server")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := dashboard.Run(ctx, *url); err != nil {
		log.Fatal(err)
	}
}
