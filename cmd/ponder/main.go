// Command ponder is the CLI for the ponder reasoning agent.
//
// Usage:
//
//	ponder chat --config config.yaml
//	ponder strategies
//	ponder validate --config config.yaml
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ponder-ai/ponder/pkg/config"
	"github.com/ponder-ai/ponder/pkg/logger"
)

var version = "dev"

// CLI defines the command-line interface.
type CLI struct {
	Version    VersionCmd    `cmd:"" help:"Show version information."`
	Chat       ChatCmd       `cmd:"" help:"Start an interactive reasoning session."`
	Strategies StrategiesCmd `cmd:"" help:"List the available reasoning strategies."`
	Validate   ValidateCmd   `cmd:"" help:"Validate a configuration file."`

	Config    string `short:"c" help:"Path to config file." type:"path"`
	LogLevel  string `help:"Log level (debug, info, warn, error)." default:"info"`
	LogFile   string `help:"Log file path (empty = stderr)."`
	LogFormat string `help:"Log format (simple or verbose)." default:"simple"`
}

// VersionCmd shows version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("ponder %s\n", version)
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("ponder"),
		kong.Description("Multi-strategy reasoning agent."),
		kong.UsageOnError(),
	)

	config.LoadDotEnv()

	output := os.Stderr
	if cli.LogFile != "" {
		file, cleanup, err := logger.OpenLogFile(cli.LogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer cleanup()
		output = file
	}
	logger.Init(logger.ParseLevel(cli.LogLevel), output, cli.LogFormat)

	if err := ctx.Run(cli); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the config file when given, defaults otherwise.
func loadConfig(cli *CLI) (*config.Config, error) {
	if cli.Config == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cli.Config)
}
