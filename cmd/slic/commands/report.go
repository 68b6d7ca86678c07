package commands

import (
	"fmt"
	"os"
)

// writeReport prints report to stdout, or to path when path is non-empty.
func writeReport(path string, report []byte) error {
	if path == "" {
		fmt.Println(string(report))
		return nil
	}
	return os.WriteFile(path, report, 0o644)
}
