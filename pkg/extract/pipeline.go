package extract

import (
	"bytes"
	"context"
	"errors"
	"strings"
)

// Method identifies the strategy that produced the extracted text.
const (
	MethodDocxText  = "docx-text"
	MethodPdfText   = "pdf-text"
	MethodVisionOCR = "vision-ocr"
)

const (
	// DefaultMaxFileSize is the upload ceiling checked before any stage runs.
	DefaultMaxFileSize = 20 * 1024 * 1024

	// minAcceptedLength is the acceptance threshold for the final cleaned
	// text. Anything shorter fails the whole operation.
	minAcceptedLength = 50

	// minNativePdfLength is the heuristic cutoff below which a native PDF
	// extraction is treated as an image-only/scanned document.
	minNativePdfLength = 100

	// OCRConfidence is the fixed confidence assigned to the vision path.
	// Deliberately optimistic; the provider does not report a usable
	// per-call probability.
	OCRConfidence = 0.95
)

// zipMagic is the ZIP local-file-header signature shared by docx and the
// rest of the OOXML container family.
var zipMagic = []byte{0x50, 0x4b, 0x03, 0x04}

// Result is the outcome of a successful extraction.
type Result struct {
	Text       string
	Method     string
	Confidence *float64 // nil for native extraction paths
	PageCount  *int     // nil when the format has no page notion
	TokenCount int
}

// Document is the raw input handed to the pipeline.
type Document struct {
	Data     []byte
	MimeType string
}

// DocxExtractor pulls text out of a word-processor container.
type DocxExtractor interface {
	ExtractDocx(ctx context.Context, data []byte) (string, error)
}

// PdfExtractor pulls the native text layer out of a PDF.
type PdfExtractor interface {
	ExtractPdf(ctx context.Context, data []byte) (text string, pageCount int, err error)
}

// VisionProvider transcribes a document image via a hosted multimodal model.
type VisionProvider interface {
	Transcribe(ctx context.Context, data []byte, mimeType string) (string, error)
}

// errStageInsufficient signals that a stage ran but its output does not
// qualify, so evaluation falls through to the next applicable stage.
var errStageInsufficient = errors.New("stage output insufficient")

type stage struct {
	name    string
	applies func(doc Document) bool
	run     func(ctx context.Context, doc Document) (*Result, error)
}

// Pipeline is the ordered fallback chain that turns an uploaded file into
// normalized text. Stages are evaluated in order; the first stage that both
// applies and accepts wins. There is no retry inside the pipeline.
type Pipeline struct {
	docx        DocxExtractor
	pdf         PdfExtractor
	vision      VisionProvider
	maxFileSize int64

	stages []stage
}

func NewPipeline(docx DocxExtractor, pdf PdfExtractor, vision VisionProvider, maxFileSize int64) *Pipeline {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	p := &Pipeline{
		docx:        docx,
		pdf:         pdf,
		vision:      vision,
		maxFileSize: maxFileSize,
	}
	p.stages = []stage{
		{name: MethodDocxText, applies: isWordContainer, run: p.runDocx},
		{name: MethodPdfText, applies: func(Document) bool { return true }, run: p.runNativePdf},
		{name: MethodVisionOCR, applies: func(Document) bool { return true }, run: p.runVisionOCR},
	}
	return p
}

// Extract runs the fallback chain for one document.
func (p *Pipeline) Extract(ctx context.Context, doc Document) (*Result, error) {
	if len(doc.Data) == 0 {
		return nil, NewValidationError("file is empty")
	}
	if int64(len(doc.Data)) > p.maxFileSize {
		return nil, NewValidationError("file exceeds size limit")
	}

	for _, s := range p.stages {
		if !s.applies(doc) {
			continue
		}
		result, err := s.run(ctx, doc)
		if errors.Is(err, errStageInsufficient) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return p.accept(result)
	}

	return nil, NewExtractionError("no extraction stage applied", nil)
}

// accept normalizes the text and enforces the minimum-length threshold.
func (p *Pipeline) accept(result *Result) (*Result, error) {
	result.Text = CleanText(result.Text)
	if len(result.Text) < minAcceptedLength {
		return nil, NewExtractionError("too short", nil)
	}
	result.TokenCount = EstimateTokens(result.Text)
	return result, nil
}

// isWordContainer matches either a declared word-processor MIME type or the
// ZIP magic prefix of the OOXML family. A match commits the document to the
// docx stage; it never falls through to the PDF or OCR paths.
func isWordContainer(doc Document) bool {
	mime := strings.ToLower(doc.MimeType)
	if strings.Contains(mime, "wordprocessingml") || strings.Contains(mime, "msword") {
		return true
	}
	return bytes.HasPrefix(doc.Data, zipMagic)
}

func (p *Pipeline) runDocx(ctx context.Context, doc Document) (*Result, error) {
	text, err := p.docx.ExtractDocx(ctx, doc.Data)
	if err != nil {
		return nil, NewExtractionError("word container extraction failed", err)
	}
	return &Result{Text: text, Method: MethodDocxText}, nil
}

// runNativePdf accepts only when the text layer is substantial enough to
// trust; a thin or failed extraction signals a scanned document and defers
// to OCR.
func (p *Pipeline) runNativePdf(ctx context.Context, doc Document) (*Result, error) {
	text, pageCount, err := p.pdf.ExtractPdf(ctx, doc.Data)
	if err != nil {
		return nil, errStageInsufficient
	}
	if len(CleanText(text)) < minNativePdfLength {
		return nil, errStageInsufficient
	}
	return &Result{Text: text, Method: MethodPdfText, PageCount: &pageCount}, nil
}

func (p *Pipeline) runVisionOCR(ctx context.Context, doc Document) (*Result, error) {
	text, err := p.vision.Transcribe(ctx, doc.Data, doc.MimeType)
	if err != nil {
		return nil, NewExtractionError("vision ocr failed", err)
	}
	confidence := OCRConfidence
	return &Result{Text: text, Method: MethodVisionOCR, Confidence: &confidence}, nil
}
