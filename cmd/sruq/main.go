// Command sruq builds, validates and sends SRU searchRetrieve requests.
//
// # Usage
//
//	sruq explain https://example.com/view/sru/01ALMA --save alma
//	sruq indexes alma --filter title
//	sruq build alma ./request.yaml
//	sruq search alma ./request.yaml --output results.xml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/roach88/sruq/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(cli.GetExitCode(err))
	}
}
