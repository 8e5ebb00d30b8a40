// Package extract turns uploaded file bytes into plain text. Each Kind has
// one handler; failures never escape Extract.
package extract

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"casedesk/internal/contextutil"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_extract.go -package=mocks casedesk/internal/extract ImageDescriber,Transcriber

// ImageDescriber turns an image into a textual description.
type ImageDescriber interface {
	DescribeImage(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Transcriber turns speech into text.
type Transcriber interface {
	Transcribe(ctx context.Context, data []byte, filename string) (string, error)
}

// ErrUnsupported is returned by a handler for content it cannot read.
var ErrUnsupported = errors.New("unsupported content")

type handlerFunc func(ctx context.Context, data []byte, mimeType, filename string) (string, error)

// Service routes files to the handler for their Kind.
type Service struct {
	images   ImageDescriber
	audio    Transcriber
	maxChars int
	handlers map[Kind]handlerFunc
}

// NewService creates an extraction service. images and audio may be nil, in
// which case those kinds yield no text. maxChars <= 0 disables the cap.
func NewService(images ImageDescriber, audio Transcriber, maxChars int) *Service {
	s := &Service{images: images, audio: audio, maxChars: maxChars}
	s.handlers = map[Kind]handlerFunc{
		KindPDF:         extractPDF,
		KindWord:        extractWord,
		KindText:        extractText,
		KindMarkdown:    extractMarkdown,
		KindHTML:        extractHTML,
		KindImage:       s.extractImage,
		KindAudio:       s.extractAudio,
		KindUnsupported: extractUnsupported,
	}
	return s
}

// Extract returns the readable text of a file. ok is false when the file is
// unsupported, corrupt, or holds no text.
func (s *Service) Extract(ctx context.Context, data []byte, mimeType, filename string) (text string, ok bool) {
	logger := contextutil.LoggerFromContext(ctx)
	kind := Classify(mimeType, filename)

	raw, err := s.run(ctx, kind, data, mimeType, filename)
	if err != nil {
		logger.WarnContext(ctx, "text extraction failed",
			"file", filename,
			"mime_type", mimeType,
			"kind", kind.String(),
			"error", err,
		)
		return "", false
	}

	text = Normalize(raw, s.maxChars)
	if text == "" {
		logger.InfoContext(ctx, "no text extracted", "file", filename, "kind", kind.String())
		return "", false
	}

	logger.InfoContext(ctx, "text extracted",
		"file", filename,
		"kind", kind.String(),
		"chars", utf8.RuneCountInString(text),
	)
	return text, true
}

// run invokes the handler. The PDF parser panics on some malformed input.
func (s *Service) run(ctx context.Context, kind Kind, data []byte, mimeType, filename string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s handler panicked: %v", kind, r)
		}
	}()
	if len(data) == 0 {
		return "", fmt.Errorf("empty file")
	}
	return s.handlers[kind](ctx, data, mimeType, filename)
}

func extractUnsupported(ctx context.Context, data []byte, mimeType, filename string) (string, error) {
	return "", fmt.Errorf("%w: %q (%s)", ErrUnsupported, filename, mimeType)
}

var (
	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

// Normalize unifies line endings, strips trailing spaces and runs of blank
// lines, trims, and caps the result at maxChars runes.
func Normalize(s string, maxChars int) string {
	s = strings.ToValidUTF8(s, "�")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\x00", "")
	s = trailingSpace.ReplaceAllString(s, "\n")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	s = strings.TrimSpace(s)

	if maxChars > 0 && utf8.RuneCountInString(s) > maxChars {
		runes := []rune(s)
		s = strings.TrimSpace(string(runes[:maxChars]))
	}
	return s
}
