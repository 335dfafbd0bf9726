package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	ocrInstruction = "Transcribe ALL text in this document verbatim. Preserve the reading order. Output only the transcribed text, nothing else."

	// ocrMaxOutputTokens bounds the transcription length.
	ocrMaxOutputTokens = 8192
)

// GeminiVisionProvider sends the raw document bytes as an inline payload to
// the Gemini generateContent endpoint with deterministic decoding.
type GeminiVisionProvider struct {
	ApiKey  string
	Model   string
	Timeout time.Duration
}

func NewGeminiVisionProvider(apiKey string, model string, timeout time.Duration) VisionProvider {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &GeminiVisionProvider{
		ApiKey:  apiKey,
		Model:   model,
		Timeout: timeout,
	}
}

type visionRequestPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *visionInlineData `json:"inline_data,omitempty"`
}

type visionInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type visionRequestContent struct {
	Parts []visionRequestPart `json:"parts"`
}

type visionGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type visionRequest struct {
	Contents         []visionRequestContent `json:"contents"`
	GenerationConfig visionGenerationConfig `json:"generationConfig"`
}

type visionResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (p *GeminiVisionProvider) Transcribe(ctx context.Context, data []byte, mimeType string) (string, error) {
	if p.ApiKey == "" {
		return "", fmt.Errorf("no vision provider credential configured")
	}
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	visionReq := visionRequest{
		Contents: []visionRequestContent{
			{
				Parts: []visionRequestPart{
					{Text: ocrInstruction},
					{InlineData: &visionInlineData{
						MimeType: mimeType,
						Data:     base64.StdEncoding.EncodeToString(data),
					}},
				},
			},
		},
		GenerationConfig: visionGenerationConfig{
			Temperature:     0,
			MaxOutputTokens: ocrMaxOutputTokens,
		},
	}

	reqJson, err := json.Marshal(visionReq)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1/models/%s:generateContent",
		p.Model,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(reqJson))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: p.Timeout}
	res, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("error from vision response, code %d, body %s", res.StatusCode, string(resByte))
	}

	var visionRes visionResponse
	if err := json.Unmarshal(resByte, &visionRes); err != nil {
		return "", err
	}
	if len(visionRes.Candidates) == 0 || len(visionRes.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("vision response contained no transcription")
	}

	var out bytes.Buffer
	for _, part := range visionRes.Candidates[0].Content.Parts {
		out.WriteString(part.Text)
	}
	return out.String(), nil
}
