package main

import (
	"context"
	"farescan/cmd/farescan/commands"
	"farescan/lib/telemetry"
	"farescan/lib/util/serviceutil"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to load .env", err)
	}

	ctx := serviceutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "farescan")
	if err != nil && !os.IsNotExist(err) {
		slog.Warn("telemetry disabled", "err", err.Error())
	}
	serviceutil.OnExit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := tel.Shutdown(ctx)
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err.Error())
		}
	})

	commands.ExecuteContext(ctx)
	serviceutil.Exit(0)
}
