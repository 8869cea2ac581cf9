// Command dcsdata inspects and prepares the golden reference data used by the
// DCS regression tests.
//
//	dcsdata list                       show the resolved path table
//	dcsdata verify [--stats]           load every artifact and report failures
//	dcsdata sync --remote gs://b/pms   mirror the data directory from a remote
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cobra.CheckErr(NewCLI().ExecuteContext(ctx))
}
