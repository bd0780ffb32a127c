package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	configPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}
	flag.StringVar(&configPath, "config", configPath, "path to the YAML config file")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&generateCmd{config: &configPath}, "")
	commander.Register(&scheduleCmd{config: &configPath}, "")
	commander.Register(&pruneCmd{config: &configPath}, "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
