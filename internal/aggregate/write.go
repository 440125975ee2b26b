package aggregate

import (
	"io"
	"os"
	"path/filepath"
)

// StdoutPath sends the artifact to the configured writer instead of a file.
const StdoutPath = "-"

// writeArtifact creates the destination directory when missing and
// overwrites outPath with text.
func writeArtifact(outPath, text string, stdout io.Writer) error {
	if outPath == StdoutPath {
		if _, err := io.WriteString(stdout, text+"\n"); err != nil {
			return &Error{Kind: ErrWrite, Path: outPath, Err: err}
		}
		return nil
	}
	if dir := filepath.Dir(outPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &Error{Kind: ErrWrite, Path: dir, Err: err}
		}
	}
	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		return &Error{Kind: ErrWrite, Path: outPath, Err: err}
	}
	return nil
}
