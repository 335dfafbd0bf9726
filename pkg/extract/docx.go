package extract

import (
	"bytes"
	"context"
	"fmt"

	"code.sajari.com/docconv"
)

const wordMimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// DocconvExtractor extracts text from word-processor containers using
// docconv's native docx support.
type DocconvExtractor struct{}

func NewDocconvExtractor() *DocconvExtractor {
	return &DocconvExtractor{}
}

func (e *DocconvExtractor) ExtractDocx(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	res, err := docconv.Convert(bytes.NewReader(data), wordMimeType, false)
	if err != nil {
		return "", fmt.Errorf("docconv: %w", err)
	}
	if res.Body == "" {
		return "", fmt.Errorf("docconv: empty document body")
	}
	return res.Body, nil
}
