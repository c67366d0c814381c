package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekinoz/classtrack/internal/pkg/apperrors"
)

// buildDocx assembles a minimal docx archive with the given paragraphs.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>`)
		require.NoError(t, xml.EscapeText(&body, []byte(p)))
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	fw, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = fw.Write(body.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestFromFile(t *testing.T) {
	t.Run("plain text", func(t *testing.T) {
		text, err := FromFile("notes.txt", []byte("hello lecture"))
		require.NoError(t, err)
		assert.Equal(t, "hello lecture", text)
	})

	t.Run("plain text rejects invalid utf8", func(t *testing.T) {
		_, err := FromFile("notes.txt", []byte{0xff, 0xfe, 0xfd})
		assert.Error(t, err)
	})

	t.Run("docx paragraphs become lines", func(t *testing.T) {
		content := buildDocx(t, "first paragraph", "second paragraph")
		text, err := FromFile("notes.docx", content)
		require.NoError(t, err)
		assert.Equal(t, "first paragraph\nsecond paragraph", text)
	})

	t.Run("docx with no document xml fails", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		fw, err := zw.Create("word/other.xml")
		require.NoError(t, err)
		_, err = fw.Write([]byte("<x/>"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		_, err = FromFile("notes.docx", buf.Bytes())
		assert.Error(t, err)
	})

	t.Run("corrupt docx fails", func(t *testing.T) {
		_, err := FromFile("notes.docx", []byte("not a zip archive"))
		assert.Error(t, err)
	})

	t.Run("extension dispatch is case-insensitive", func(t *testing.T) {
		text, err := FromFile("NOTES.TXT", []byte("shouted notes"))
		require.NoError(t, err)
		assert.Equal(t, "shouted notes", text)
	})

	t.Run("unknown extension is unsupported", func(t *testing.T) {
		_, err := FromFile("notes.mp3", []byte("audio"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrUnsupportedFormat))
	})

	t.Run("missing extension is unsupported", func(t *testing.T) {
		_, err := FromFile("notes", []byte("anything"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrUnsupportedFormat))
	})
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a.txt"))
	assert.True(t, Supported("a.docx"))
	assert.True(t, Supported("a.pdf"))
	assert.True(t, Supported("a.PDF"))
	assert.False(t, Supported("a.mp3"))
	assert.False(t, Supported("a"))
}
