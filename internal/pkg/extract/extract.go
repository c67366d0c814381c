// Package extract turns uploaded note files into plain text for
// summarization. Each supported format is a variant implementing Extractor;
// new formats are added by registering a variant, not by branching.
package extract

import (
	"path/filepath"
	"strings"

	"github.com/ekinoz/classtrack/internal/pkg/apperrors"
)

// Extractor converts one file format into plain text.
type Extractor interface {
	Extract(content []byte) (string, error)
}

var extractors = map[string]Extractor{
	".txt":  plainText{},
	".docx": wordDocument{},
	".pdf":  pdfDocument{},
}

// FromFile extracts text from a note file, dispatching on the extension of
// its stored name. Unknown extensions fail with ErrUnsupportedFormat.
func FromFile(name string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	extractor, ok := extractors[ext]
	if !ok {
		return "", apperrors.ErrUnsupportedFormat
	}
	return extractor.Extract(content)
}

// Supported reports whether a filename carries an extractable extension.
func Supported(name string) bool {
	_, ok := extractors[strings.ToLower(filepath.Ext(name))]
	return ok
}
