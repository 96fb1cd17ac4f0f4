package mdpreview

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-mdpreview/internal/pipeline"
)

// PayloadElementID is the id of the page element carrying the source.
const PayloadElementID = pipeline.PayloadElementID

// EncodePayload returns the standard base64 encoding of the UTF-8 Markdown.
func EncodePayload(markdown string) string {
	return base64.StdEncoding.EncodeToString([]byte(markdown))
}

// DecodePayload reverses EncodePayload. Surrounding whitespace is ignored.
// Returns ErrPayloadDecode for malformed base64 and ErrPayloadEncoding when
// the decoded bytes are not valid UTF-8.
func DecodePayload(payload string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPayloadDecode, err)
	}
	if !utf8.Valid(raw) {
		return "", ErrPayloadEncoding
	}
	return string(raw), nil
}

// ExtractPayload reads a generated page and returns the Markdown source
// embedded in it. The payload is the <div> with id PayloadElementID placed
// directly in <body>; a heading anchor sharing the id is not mistaken for it.
func ExtractPayload(page io.Reader) (string, error) {
	text, err := pipeline.PayloadText(page)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPayloadNotFound, err)
	}
	return DecodePayload(text)
}
