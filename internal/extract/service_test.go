package extract_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"casedesk/internal/extract"
	"casedesk/internal/extract/mocks"

	"go.uber.org/mock/gomock"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct{ name, body string }{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", documentXML},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			t.Fatalf("zip Create(%q) error = %v", part.name, err)
		}
		if _, err := w.Write([]byte(part.body)); err != nil {
			t.Fatalf("zip Write(%q) error = %v", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close() error = %v", err)
	}
	return buf.Bytes()
}

func TestService_Extract(t *testing.T) {
	docx := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Engagement</w:t></w:r><w:r><w:t xml:space="preserve"> Letter</w:t></w:r></w:p>
<w:p><w:r><w:t>Fee:</w:t><w:tab/><w:t>200</w:t></w:r></w:p>
</w:body>
</w:document>`

	tests := []struct {
		name     string
		data     []byte
		mimeType string
		filename string
		want     string
		contains []string
		wantOK   bool
	}{
		{
			name:     "plain text",
			data:     []byte("  line one  \r\nline two\n\n\n\nline three  "),
			mimeType: "text/plain",
			filename: "notes.txt",
			want:     "line one\nline two\n\nline three",
			wantOK:   true,
		},
		{
			name:     "markdown",
			data:     []byte("# Title\n\nSome *bold* text.\n\n- one\n- two\n"),
			mimeType: "text/markdown",
			filename: "doc.md",
			want:     "Title\n\nSome bold text.\n\none\ntwo",
			wantOK:   true,
		},
		{
			name:     "html strips scripts",
			data:     []byte("<html><body><h1>Heading</h1><p>Body <b>text</b></p><script>alert(1)</script></body></html>"),
			mimeType: "text/html",
			filename: "page.html",
			want:     "Heading\n\nBody text",
			wantOK:   true,
		},
		{
			name:     "docx",
			data:     nil,
			mimeType: "",
			filename: "letter.docx",
			contains: []string{"Engagement", "Letter", "Fee:", "200"},
			wantOK:   true,
		},
		{
			name:     "rtf",
			data:     []byte(`{\rtf1\ansi\deff0 {\fonttbl {\f0 Times;}}\f0 Retainer agreement signed\par}`),
			mimeType: "application/rtf",
			filename: "retainer.rtf",
			contains: []string{"Retainer agreement signed"},
			wantOK:   true,
		},
		{
			name:     "corrupt docx",
			data:     []byte("not a zip"),
			mimeType: "",
			filename: "broken.docx",
			wantOK:   false,
		},
		{
			name:     "corrupt pdf",
			data:     []byte("%PDF-1.4 garbage"),
			mimeType: "application/pdf",
			filename: "broken.pdf",
			wantOK:   false,
		},
		{
			name:     "unsupported",
			data:     []byte("PK\x03\x04"),
			mimeType: "application/zip",
			filename: "bundle.zip",
			wantOK:   false,
		},
		{
			name:     "whitespace only",
			data:     []byte(" \n\t "),
			mimeType: "text/plain",
			filename: "blank.txt",
			wantOK:   false,
		},
		{
			name:     "empty file",
			data:     []byte{},
			mimeType: "text/plain",
			filename: "empty.txt",
			wantOK:   false,
		},
	}

	svc := extract.NewService(nil, nil, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.data
			if tt.name == "docx" {
				data = buildDocx(t, docx)
			}

			got, ok := svc.Extract(context.Background(), data, tt.mimeType, tt.filename)
			if ok != tt.wantOK {
				t.Fatalf("Extract() ok = %v, want %v (text %q)", ok, tt.wantOK, got)
			}
			if tt.wantOK && tt.contains == nil && got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Extract() = %q, want it to contain %q", got, want)
				}
			}
			if !tt.wantOK && got != "" {
				t.Errorf("Extract() text = %q, want empty on failure", got)
			}
		})
	}
}

func TestService_Extract_Cap(t *testing.T) {
	svc := extract.NewService(nil, nil, 20000)
	got, ok := svc.Extract(context.Background(), []byte(strings.Repeat("ä", 25000)), "text/plain", "big.txt")
	if !ok {
		t.Fatal("Extract() ok = false, want true")
	}
	if n := utf8.RuneCountInString(got); n != 20000 {
		t.Errorf("Extract() length = %d, want 20000", n)
	}
}

func TestService_Extract_Image(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	images := mocks.NewMockImageDescriber(ctrl)
	svc := extract.NewService(images, nil, 0)

	images.EXPECT().
		DescribeImage(gomock.Any(), []byte("png-bytes"), "image/png").
		Return("A receipt dated March 3.", nil)
	got, ok := svc.Extract(context.Background(), []byte("png-bytes"), "application/octet-stream", "receipt.png")
	if !ok || got != "A receipt dated March 3." {
		t.Errorf("Extract() = (%q, %v), want description", got, ok)
	}

	images.EXPECT().
		DescribeImage(gomock.Any(), gomock.Any(), "image/jpeg").
		Return("", errors.New("vision model unavailable"))
	if _, ok := svc.Extract(context.Background(), []byte("jpg"), "image/jpeg", "photo.jpg"); ok {
		t.Error("Extract() ok = true, want false when the describer fails")
	}
}

func TestService_Extract_Audio(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	audio := mocks.NewMockTranscriber(ctrl)
	svc := extract.NewService(nil, audio, 0)

	audio.EXPECT().
		Transcribe(gomock.Any(), []byte("mp3"), "call.mp3").
		Return(" We settle for ten. ", nil)
	got, ok := svc.Extract(context.Background(), []byte("mp3"), "audio/mpeg", "call.mp3")
	if !ok || got != "We settle for ten." {
		t.Errorf("Extract() = (%q, %v), want transcript", got, ok)
	}
}

func TestService_Extract_MediaNotConfigured(t *testing.T) {
	svc := extract.NewService(nil, nil, 0)
	if _, ok := svc.Extract(context.Background(), []byte("png"), "image/png", "a.png"); ok {
		t.Error("Extract() image ok = true, want false without a describer")
	}
	if _, ok := svc.Extract(context.Background(), []byte("mp3"), "audio/mpeg", "a.mp3"); ok {
		t.Error("Extract() audio ok = true, want false without a transcriber")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"crlf", "a\r\nb", 0, "a\nb"},
		{"blank runs", "a\n\n\n\n\nb", 0, "a\n\nb"},
		{"trailing spaces", "a   \nb\t\n", 0, "a\nb"},
		{"nul bytes", "a\x00b", 0, "ab"},
		{"cap", "abcdef", 3, "abc"},
		{"cap then trim", "ab   cd", 4, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract.Normalize(tt.in, tt.max); got != tt.want {
				t.Errorf("Normalize(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}
