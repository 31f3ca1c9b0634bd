// Package resume turns uploaded resume files into plain text.
package resume

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	apperrors "hirelink/internal/errors"
)

// MaxUploadSize is the largest resume file accepted.
const MaxUploadSize = 5 << 20

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// DocumentReader transcribes binary documents.
type DocumentReader interface {
	ExtractDocumentText(ctx context.Context, mimeType string, data []byte) (string, error)
}

// Extractor reads plain text directly and hands binary formats to a DocumentReader.
type Extractor struct {
	reader DocumentReader
}

// NewExtractor creates an extractor. reader may be nil, in which case only
// text formats are accepted.
func NewExtractor(reader DocumentReader) *Extractor {
	return &Extractor{reader: reader}
}

// Extract reads at most MaxUploadSize bytes from r and returns its text.
func (e *Extractor) Extract(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}
	if len(data) > MaxUploadSize {
		return "", apperrors.ErrFileTooLarge
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return "", apperrors.ErrEmptyResume
	}

	mt := mimetype.Detect(data)
	switch {
	case mt.Is("text/plain"), mt.Is("text/markdown"):
		return decodeText(data)
	case mt.Is(mimePDF), mt.Is(mimeDOCX):
		if e.reader == nil {
			return "", apperrors.ErrAIUnavailable
		}
		text, err := e.reader.ExtractDocumentText(ctx, mt.String(), data)
		if err != nil {
			return "", fmt.Errorf("%w: %w", apperrors.ErrAIUnavailable, err)
		}
		if strings.TrimSpace(text) == "" {
			return "", apperrors.ErrEmptyResume
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFormat, mt.String())
	}
}

func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: text is not UTF-8", apperrors.ErrUnsupportedFormat)
	}
	text := strings.TrimSpace(strings.ReplaceAll(string(data), "\r\n", "\n"))
	if text == "" {
		return "", apperrors.ErrEmptyResume
	}
	return text, nil
}
