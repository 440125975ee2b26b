package aggregate

import (
	"errors"
	"os"
	"strings"
)

// FileRecord is one matching file as read from disk.
type FileRecord struct {
	AbsolutePath string
	RelativePath string
	RawContent   string
}

// NormalizedRecord is the rendered form of a FileRecord. When Err is set the
// file could not be read and the artifact carries an inline error marker in
// place of NormalizedText.
type NormalizedRecord struct {
	AbsolutePath   string
	RelativePath   string
	NormalizedText string
	Err            error
}

func readFileRecord(abs, rel string) (FileRecord, error) {
	b, err := os.ReadFile(abs)
	if err != nil {
		return FileRecord{}, err
	}
	return FileRecord{
		AbsolutePath: abs,
		RelativePath: rel,
		RawContent:   strings.ToValidUTF8(string(b), "\uFFFD"),
	}, nil
}

func (r FileRecord) normalize(fn func(string) string) NormalizedRecord {
	return NormalizedRecord{
		AbsolutePath:   r.AbsolutePath,
		RelativePath:   r.RelativePath,
		NormalizedText: fn(r.RawContent),
	}
}

func failedRecord(abs, rel string, err error) NormalizedRecord {
	return NormalizedRecord{
		AbsolutePath: abs,
		RelativePath: rel,
		Err:          &Error{Kind: ErrFileRead, Path: rel, Err: err},
	}
}

// failureMessage is the text shown in the artifact for a failed record.
func (r NormalizedRecord) failureMessage() string {
	var e *Error
	if errors.As(r.Err, &e) && e.Err != nil {
		return sanitizeMessage(e.Err.Error())
	}
	return sanitizeMessage(r.Err.Error())
}

func sanitizeMessage(msg string) string {
	s := strings.Join(strings.Fields(msg), " ")
	if s == "" {
		return "error"
	}
	return s
}
