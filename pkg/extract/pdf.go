package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// NativePdfExtractor reads the embedded text layer of a PDF. It does not
// rasterize; scanned documents come back near-empty and the pipeline falls
// through to OCR.
type NativePdfExtractor struct{}

func NewNativePdfExtractor() *NativePdfExtractor {
	return &NativePdfExtractor{}
}

func (e *NativePdfExtractor) ExtractPdf(ctx context.Context, data []byte) (string, int, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("pdf open: %w", err)
	}

	pageCount := reader.NumPage()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", pageCount, fmt.Errorf("pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", pageCount, fmt.Errorf("pdf read: %w", err)
	}

	return buf.String(), pageCount, nil
}
