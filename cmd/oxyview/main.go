// oxyview - WebGPU glTF/GLB asset viewer
//
// Controls:
//
//	Mouse drag  - Rotate the asset (yaw/pitch)
//	Scroll      - Zoom in/out
//	O           - Toggle the orbit animation
//	R           - Reset the view
//	Esc         - Quit
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

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
