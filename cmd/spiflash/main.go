package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	chlog "github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/mklimuk/spiflash/cmd/spiflash/command"
	"github.com/mklimuk/spiflash/flashctx"
)

var version string
var commit string
var date string

func main() {
	os.Exit(run())
}

func run() int {
	app := cli.NewApp()
	app.Name = "spiflash"
	app.EnableBashCompletion = true
	app.Version = fmt.Sprintf("%s-%s-%s", version, date, commit)
	app.Usage = "SPI NOR flash identification and programming tool"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
	}
	app.Before = func(c *cli.Context) error {
		charm := chlog.NewWithOptions(os.Stderr, chlog.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			TimeFormat:      time.DateTime,
		})
		verbose := c.Bool("verbose")
		if verbose {
			charm.SetLevel(chlog.DebugLevel)
		}
		slog.SetDefault(slog.New(charm))
		c.Context = flashctx.SetVerbose(c.Context, verbose)
		return nil
	}
	app.Commands = cli.Commands{
		command.IdentifyCmd,
		command.ReadCmd,
		command.WriteCmd,
		command.EraseCmd,
		&usbCmd,
	}
	err := app.Run(os.Args)
	if err != nil {
		if exerr, ok := err.(cli.ExitCoder); ok {
			log.Printf("unexpected error: %v", err)
			return exerr.ExitCode()
		}
		return 1
	}
	return 0
}
