package commands

import (
	"context"
)

// CLI dispatches top-level subcommands to their Command.Execute, the
// same two-layer split as the teacher's cmd/ark/commands.CLI.
type CLI struct {
	container *Container
}

// NewCLI returns a CLI bound to container.
func NewCLI(container *Container) *CLI {
	return &CLI{container: container}
}

// Scan runs the "scan" subcommand.
func (c *CLI) Scan(ctx context.Context, args []string) error {
	return NewScanCommand(c.container).Execute(ctx, args)
}

// File runs the "file" subcommand.
func (c *CLI) File(ctx context.Context, args []string) error {
	return NewFileCommand(c.container).Execute(ctx, args)
}

// Version runs the "version" subcommand.
func (c *CLI) Version(ctx context.Context, args []string) error {
	return NewVersionCommand(c.container).Execute(ctx, args)
}
