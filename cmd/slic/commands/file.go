package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
)

// FileCommand runs the per-file orchestrator on a single path and prints
// its hits, without touching the walker or aggregator.
type FileCommand struct {
	container *Container
}

// NewFileCommand returns a FileCommand bound to container.
func NewFileCommand(container *Container) *FileCommand {
	return &FileCommand{container: container}
}

// Execute parses args ("file [--details] <path>"; flags after <path> are
// not parsed) and prints the hits as indented JSON.
func (c *FileCommand) Execute(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("file", flag.ContinueOnError)
	details := fs.Bool("details", true, "extract copyright and license text per hit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: slic file [--details] <path>")
	}

	hits, err := c.container.Orchestrator.LicensesIn(fs.Arg(0), *details)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(hits, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling hits: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
