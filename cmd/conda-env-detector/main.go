package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/company/conda-env-detector/internal/cli"
	"github.com/company/conda-env-detector/internal/exitcodes"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := cli.NewApp(version, commit, date)
	if err := app.Execute(ctx); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			stop()
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(exitcodes.GeneralError)
	}
}
