package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/lu4p/cat"
)

var (
	zipMagic = []byte("PK\x03\x04")
	rtfMagic = []byte(`{\rtf`)
)

func extractPDF(ctx context.Context, data []byte, mimeType, filename string) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	out, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return string(out), nil
}

// extractWord reads .docx, .odt and .rtf documents. Anything that is not a
// zip package or an RTF stream is rejected before parsing.
func extractWord(ctx context.Context, data []byte, mimeType, filename string) (string, error) {
	if !bytes.HasPrefix(data, zipMagic) && !bytes.HasPrefix(data, rtfMagic) {
		return "", fmt.Errorf("not a word processing document")
	}
	text, err := cat.FromBytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return text, nil
}

func extractText(ctx context.Context, data []byte, mimeType, filename string) (string, error) {
	return strings.ToValidUTF8(string(data), "�"), nil
}
