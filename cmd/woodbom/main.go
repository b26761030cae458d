// WoodBOM: wood bill of materials and cut-list optimizer.
//
// Reads a scene export, STL mesh or CSV/Excel cut list, measures every part,
// packs the cut lengths into standard boards and writes the cost report.
//
// Build:
//   go build -o woodbom ./cmd/woodbom
//
// Usage:
//   woodbom report table.json --format csv,pdf,labels
//   woodbom compare table.json
//   woodbom config init

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
