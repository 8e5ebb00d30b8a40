package extract

import (
	"mime"
	"path/filepath"
	"strings"
)

// Kind is a content category with its own extraction strategy.
type Kind int

const (
	KindUnsupported Kind = iota
	KindPDF
	KindWord
	KindText
	KindMarkdown
	KindHTML
	KindImage
	KindAudio
)

func (k Kind) String() string {
	switch k {
	case KindPDF:
		return "pdf"
	case KindWord:
		return "word"
	case KindText:
		return "text"
	case KindMarkdown:
		return "markdown"
	case KindHTML:
		return "html"
	case KindImage:
		return "image"
	case KindAudio:
		return "audio"
	default:
		return "unsupported"
	}
}

var mimeKinds = map[string]Kind{
	"application/pdf": KindPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": KindWord,
	"application/vnd.oasis.opendocument.text":                                 KindWord,
	"application/rtf":       KindWord,
	"text/rtf":              KindWord,
	"text/plain":            KindText,
	"text/csv":              KindText,
	"application/json":      KindText,
	"application/xml":       KindText,
	"text/xml":              KindText,
	"text/markdown":         KindMarkdown,
	"text/x-markdown":       KindMarkdown,
	"text/html":             KindHTML,
	"application/xhtml+xml": KindHTML,
	"image/png":             KindImage,
	"image/jpeg":            KindImage,
	"image/gif":             KindImage,
	"image/webp":            KindImage,
	"audio/mpeg":            KindAudio,
	"audio/mp3":             KindAudio,
	"audio/mp4":             KindAudio,
	"audio/x-m4a":           KindAudio,
	"audio/m4a":             KindAudio,
	"audio/wav":             KindAudio,
	"audio/x-wav":           KindAudio,
	"audio/webm":            KindAudio,
	"audio/ogg":             KindAudio,
	"audio/flac":            KindAudio,
}

var extensionKinds = map[string]Kind{
	".pdf":      KindPDF,
	".docx":     KindWord,
	".odt":      KindWord,
	".rtf":      KindWord,
	".txt":      KindText,
	".csv":      KindText,
	".json":     KindText,
	".log":      KindText,
	".md":       KindMarkdown,
	".markdown": KindMarkdown,
	".html":     KindHTML,
	".htm":      KindHTML,
	".png":      KindImage,
	".jpg":      KindImage,
	".jpeg":     KindImage,
	".gif":      KindImage,
	".webp":     KindImage,
	".mp3":      KindAudio,
	".m4a":      KindAudio,
	".wav":      KindAudio,
	".webm":     KindAudio,
	".ogg":      KindAudio,
	".flac":     KindAudio,
}

// Classify picks the extraction strategy for a file. A recognized MIME type
// wins; otherwise the filename extension decides.
func Classify(mimeType, filename string) Kind {
	if mediaType, _, err := mime.ParseMediaType(mimeType); err == nil {
		if k, ok := mimeKinds[strings.ToLower(mediaType)]; ok {
			return k
		}
	}
	if k, ok := extensionKinds[strings.ToLower(filepath.Ext(filename))]; ok {
		return k
	}
	return KindUnsupported
}

// MimeTypeFor returns the canonical MIME type for a filename, or
// application/octet-stream when the extension is unknown.
func MimeTypeFor(filename string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); t != "" {
		return t
	}
	switch Classify("", filename) {
	case KindMarkdown:
		return "text/markdown"
	case KindWord:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return "application/octet-stream"
}
