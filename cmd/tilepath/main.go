// Command tilepath finds, simulates and serves A* paths over tile maps.
//
//	tilepath find --from 0,0 --to 9,4
//	tilepath simulate --config scenario.yaml
//	tilepath serve --config scenario.yaml --addr :8080
//	tilepath bench --width 128 --height 128 --queries 500
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
