package main

import (
	"context"

	"egovassist-backend/cmd/egov-cli/commands"
	"egovassist-backend/lib/telemetry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetry.SetupFromEnv(ctx, "egov-cli")
	telemetry.InitSlog(true)
	telemetry.InstrumentPerfStats(ctx)
	commands.ExecuteContext(ctx)
}
