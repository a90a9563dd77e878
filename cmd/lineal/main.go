package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tannerhaus/lineal/cmd/lineal/commands"
	"github.com/tannerhaus/lineal/pkg/telemetry"
	"github.com/tannerhaus/lineal/pkg/version"
)

func main() {
	ctx := context.Background()

	shutdown, err := telemetry.Init(ctx, version.AppName, version.Current, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: telemetry init failed: %v\n", err)
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	commands.Execute()
}
