package commands

import (
	"context"
	"fmt"
)

// Version is the slic release identifier, bumped by hand per release.
const Version = "1.0.0"

// VersionCommand prints the CLI's version string.
type VersionCommand struct{}

// NewVersionCommand returns a VersionCommand.
func NewVersionCommand(*Container) *VersionCommand {
	return &VersionCommand{}
}

// Execute ignores args and prints the version.
func (c *VersionCommand) Execute(context.Context, []string) error {
	fmt.Printf("slic version %s\n", Version)
	return nil
}
