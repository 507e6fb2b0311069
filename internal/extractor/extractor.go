// Package extractor turns uploaded document bytes into plain text and
// detected structural sections. Extraction failures are reported as
// errors here; callers decide whether they are fatal.
package extractor

import (
	"errors"
	"fmt"
)

var ErrUnsupported = errors.New("unsupported content type")

// Extract dispatches on content type and returns the plain text of the
// document.
func Extract(data []byte, contentType string) (string, error) {
	switch contentType {
	case "application/pdf":
		return ExtractPDF(data)
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.openxmlformats-officedocument.wordprocessingml":
		return ExtractDOCX(data)
	case "text/plain":
		return ExtractTXT(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, contentType)
	}
}
