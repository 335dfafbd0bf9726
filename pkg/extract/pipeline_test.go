package extract

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeDocx struct {
	text  string
	err   error
	calls int
}

func (f *fakeDocx) ExtractDocx(ctx context.Context, data []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakePdf struct {
	text  string
	pages int
	err   error
	calls int
}

func (f *fakePdf) ExtractPdf(ctx context.Context, data []byte) (string, int, error) {
	f.calls++
	return f.text, f.pages, f.err
}

type fakeVision struct {
	text  string
	err   error
	calls int
}

func (f *fakeVision) Transcribe(ctx context.Context, data []byte, mimeType string) (string, error) {
	f.calls++
	return f.text, f.err
}

func longText(n int) string {
	return strings.Repeat("curriculum vitae ", n/17+1)[:n]
}

func zipPrefixed(n int) []byte {
	data := append([]byte{0x50, 0x4b, 0x03, 0x04}, make([]byte, n)...)
	return data
}

func TestExtractZipMagicUsesDocxStageOnly(t *testing.T) {
	docx := &fakeDocx{text: longText(200)}
	pdf := &fakePdf{text: longText(500), pages: 3}
	vision := &fakeVision{text: longText(300)}
	p := NewPipeline(docx, pdf, vision, 0)

	result, err := p.Extract(context.Background(), Document{Data: zipPrefixed(64)})
	assert.NoError(t, err)
	assert.Equal(t, MethodDocxText, result.Method)
	assert.Equal(t, 1, docx.calls)
	assert.Equal(t, 0, pdf.calls, "docx must never fall through to the pdf path")
	assert.Equal(t, 0, vision.calls, "docx must never fall through to the ocr path")
}

func TestExtractWordMimeUsesDocxStage(t *testing.T) {
	docx := &fakeDocx{text: longText(200)}
	pdf := &fakePdf{}
	vision := &fakeVision{}
	p := NewPipeline(docx, pdf, vision, 0)

	result, err := p.Extract(context.Background(), Document{
		Data:     []byte("not a zip but mime says word"),
		MimeType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	})
	assert.NoError(t, err)
	assert.Equal(t, MethodDocxText, result.Method)
	assert.Nil(t, result.Confidence)
	assert.Equal(t, 0, vision.calls)
}

func TestExtractNativePdfAccepted(t *testing.T) {
	pdf := &fakePdf{text: longText(250), pages: 2}
	vision := &fakeVision{}
	p := NewPipeline(&fakeDocx{}, pdf, vision, 0)

	result, err := p.Extract(context.Background(), Document{
		Data:     []byte("%PDF-1.7 something"),
		MimeType: "application/pdf",
	})
	assert.NoError(t, err)
	assert.Equal(t, MethodPdfText, result.Method)
	assert.Nil(t, result.Confidence, "native extraction carries no probabilistic confidence")
	if assert.NotNil(t, result.PageCount) {
		assert.Equal(t, 2, *result.PageCount)
	}
	assert.Equal(t, 0, vision.calls, "no ocr call when the native text layer is sufficient")
}

func TestExtractThinPdfFallsBackToOCR(t *testing.T) {
	tests := []struct {
		name string
		pdf  *fakePdf
	}{
		{name: "short text layer", pdf: &fakePdf{text: "scan", pages: 1}},
		{name: "pdf parse error", pdf: &fakePdf{err: fmt.Errorf("malformed xref")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vision := &fakeVision{text: longText(400)}
			p := NewPipeline(&fakeDocx{}, tt.pdf, vision, 0)

			result, err := p.Extract(context.Background(), Document{
				Data:     []byte("%PDF-1.4 scanned"),
				MimeType: "application/pdf",
			})
			assert.NoError(t, err)
			assert.Equal(t, MethodVisionOCR, result.Method)
			assert.Equal(t, 1, vision.calls, "exactly one ocr call")
			if assert.NotNil(t, result.Confidence) {
				assert.InDelta(t, OCRConfidence, *result.Confidence, 1e-9)
			}
		})
	}
}

func TestExtractOCRFailurePropagates(t *testing.T) {
	vision := &fakeVision{err: fmt.Errorf("rate limited by provider")}
	p := NewPipeline(&fakeDocx{}, &fakePdf{text: "thin"}, vision, 0)

	_, err := p.Extract(context.Background(), Document{Data: []byte("%PDF-"), MimeType: "application/pdf"})
	assert.Error(t, err)
	var extractionErr *ExtractionError
	assert.ErrorAs(t, err, &extractionErr)
	assert.Contains(t, err.Error(), "rate limited", "the provider message rides along")
}

func TestExtractShortResultFails(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		p    *Pipeline
	}{
		{
			name: "short docx",
			doc:  Document{Data: zipPrefixed(16)},
			p:    NewPipeline(&fakeDocx{text: "too short"}, &fakePdf{}, &fakeVision{}, 0),
		},
		{
			name: "short ocr transcription",
			doc:  Document{Data: []byte("%PDF-"), MimeType: "application/pdf"},
			p:    NewPipeline(&fakeDocx{}, &fakePdf{text: ""}, &fakeVision{text: "blurry"}, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.p.Extract(context.Background(), tt.doc)
			assert.Error(t, err)
			var extractionErr *ExtractionError
			assert.ErrorAs(t, err, &extractionErr)
			assert.Contains(t, err.Error(), "too short")
		})
	}
}

func TestExtractSizeAndEmptyValidation(t *testing.T) {
	p := NewPipeline(&fakeDocx{}, &fakePdf{}, &fakeVision{}, 1024)

	_, err := p.Extract(context.Background(), Document{Data: nil})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = p.Extract(context.Background(), Document{Data: make([]byte, 2048)})
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "size limit")
}

func TestExtractNormalizesText(t *testing.T) {
	docx := &fakeDocx{text: "  Jane\tDoe\x00\x01 \n\n Senior   Engineer " + longText(100)}
	p := NewPipeline(docx, &fakePdf{}, &fakeVision{}, 0)

	result, err := p.Extract(context.Background(), Document{Data: zipPrefixed(8)})
	assert.NoError(t, err)
	assert.NotContains(t, result.Text, "\x00")
	assert.NotContains(t, result.Text, "\t")
	assert.NotContains(t, result.Text, "  ", "whitespace runs are collapsed")
	assert.True(t, strings.HasPrefix(result.Text, "Jane Doe"))
	assert.Greater(t, result.TokenCount, 0)
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "control chars stripped", in: "a\x00b\x07c", want: "abc"},
		{name: "whitespace collapsed", in: "a  b\n\nc\t d", want: "a b c d"},
		{name: "trimmed", in: "   a   ", want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}
