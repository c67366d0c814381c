package extract

import (
	"fmt"
	"unicode/utf8"
)

// plainText handles .txt notes.
type plainText struct{}

func (plainText) Extract(content []byte) (string, error) {
	if !utf8.Valid(content) {
		return "", fmt.Errorf("text file is not valid UTF-8")
	}
	return string(content), nil
}
