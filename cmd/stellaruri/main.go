package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "stellaruri"
	app.Usage = "Build, parse and share web+stellar:pay payment URIs"
	app.Commands = []*cli.Command{
		buildCommand,
		parseCommand,
		linksCommand,
		extractCommand,
		qrCommand,
	}
	app.ExitErrHandler = func(ctx *cli.Context, err error) {}
	return app
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[stellaruri] %v\n", err)
	os.Exit(1)
}
