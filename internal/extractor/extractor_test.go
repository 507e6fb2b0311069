package extractor

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

// buildDOCX assembles a minimal DOCX container with one paragraph per
// input line.
func buildDOCX(t *testing.T, lines ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, line := range lines {
		body.WriteString("<w:p><w:r><w:t>")
		body.WriteString(line)
		body.WriteString("</w:t></w:r></w:p>")
	}

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body.String() + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("failed to create zip entry: %v", err)
	}
	if _, err := f.Write([]byte(document)); err != nil {
		t.Fatalf("failed to write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractDOCX(t *testing.T) {
	data := buildDOCX(t, "ARTICLES OF ASSOCIATION", "The share capital is USD 50,000.")

	text, err := ExtractDOCX(data)
	if err != nil {
		t.Fatalf("ExtractDOCX returned error: %v", err)
	}

	if !strings.Contains(text, "ARTICLES OF ASSOCIATION") {
		t.Errorf("extracted text missing heading: %q", text)
	}
	if !strings.Contains(text, "share capital") {
		t.Errorf("extracted text missing body: %q", text)
	}
}

func TestExtractDOCXInvalid(t *testing.T) {
	if _, err := ExtractDOCX([]byte("not a zip archive")); err == nil {
		t.Error("expected error for non-ZIP input")
	}
}

func TestExtractDOCXEmpty(t *testing.T) {
	data := buildDOCX(t, "")

	if _, err := ExtractDOCX(data); err == nil {
		t.Error("expected error for DOCX with no text")
	}
}

func TestExtractTXT(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want string
	}{
		{"plain utf8", []byte("Board Resolution\nIt was resolved."), "Board Resolution\nIt was resolved."},
		{"utf8 bom", append([]byte{0xEF, 0xBB, 0xBF}, []byte("UBO Declaration")...), "UBO Declaration"},
		{"windows line endings", []byte("line one\r\nline two\r\n"), "line one\nline two"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text, err := ExtractTXT(tc.data)
			if err != nil {
				t.Fatalf("ExtractTXT returned error: %v", err)
			}
			if text != tc.want {
				t.Errorf("got %q, want %q", text, tc.want)
			}
		})
	}
}

func TestExtractTXTEmpty(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("   \n\t  ")} {
		if _, err := ExtractTXT(data); err == nil {
			t.Error("expected error for empty input")
		}
	}
}

func TestExtractUnsupportedContentType(t *testing.T) {
	_, err := Extract([]byte("data"), "application/msword")
	if err == nil {
		t.Fatal("expected error for unsupported content type")
	}
	if !strings.Contains(err.Error(), "unsupported content type") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestExtractDispatch(t *testing.T) {
	text, err := Extract([]byte("plain text upload"), "text/plain")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if text != "plain text upload" {
		t.Errorf("got %q", text)
	}
}
