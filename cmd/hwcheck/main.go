package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/gradekit/hwcheck/internal/cli"
)

var version = "dev"

func main() {
	_ = godotenv.Load()
	if err := run(os.Args[1:]); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}

func run(args []string) error {
	cmd := cli.NewRootCmd(version)
	cmd.SetArgs(args)
	return cmd.Execute()
}
