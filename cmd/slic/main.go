package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gerv/slic/cmd/slic/commands"
)

const appName = "slic"

func main() {
	var showVersion, verbose bool
	flag.BoolVar(&showVersion, "version", false, "show version information")
	flag.BoolVar(&verbose, "verbose", false, "enable debug/info logging")
	flag.Parse()

	if showVersion {
		fmt.Printf("%s version %s\n", appName, commands.Version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	container, err := commands.NewContainer(ctx, commands.Options{Verbose: verbose})
	if err != nil {
		log.Fatalf("failed to build container: %v", err)
	}

	cli := commands.NewCLI(container)

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "scan":
		if err := cli.Scan(ctx, commandArgs); err != nil {
			log.Fatalf("scan failed: %v", err)
		}
	case "file":
		if err := cli.File(ctx, commandArgs); err != nil {
			log.Fatalf("file failed: %v", err)
		}
	case "version":
		cli.Version(ctx, commandArgs)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - source tree license identification

Usage: %s <command> [options]

Commands:
  scan    - walk a directory and write a ScanRun report
  file    - classify a single file and print its hits
  version - show version information
  help    - show this help message

Examples:
  %s scan --details --out report.json ./my-project
  %s file ./main.go

Use '%s <command> --help' for more information about a command.
`, appName, appName, appName, appName, appName)
}
