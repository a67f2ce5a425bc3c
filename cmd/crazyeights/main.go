package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play a tournament at the console"`
	Simulate SimulateCmd      `cmd:"" help:"Run bot-only tournaments and print statistics"`
	Info     VersionCmd       `cmd:"" name:"version" help:"Print the version and exit"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("crazyeights"),
		kong.Description("Crazy Eights tournaments against heuristic bots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
