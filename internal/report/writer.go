package report

import (
	"fmt"
	"os"
)

// Write overwrites the report file at path. One write per cycle; prior
// contents are replaced wholesale.
func Write(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
