package asr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/campaign-scribe/campaign-scribe/pkg/config"
)

// DeepgramClient is a minimal Deepgram pre-recorded transcription client
type DeepgramClient struct {
	apiKey     string
	baseURL    string
	model      string
	client     *http.Client
	maxRetries uint64
}

// NewDeepgramClient creates a Deepgram client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewDeepgramClient(cfg *config.DeepgramConfig) *DeepgramClient {
	var apiKey, base, model string
	if cfg != nil {
		apiKey = cfg.APIKey
		base = cfg.BaseURL
		model = cfg.Model
	}
	if apiKey == "" {
		apiKey = os.Getenv("DEEPGRAM_API_KEY")
	}
	if base == "" {
		base = "https://api.deepgram.com"
	}
	if model == "" {
		model = "nova-3"
	}
	return &DeepgramClient{
		apiKey:     apiKey,
		baseURL:    base,
		model:      model,
		client:     &http.Client{Timeout: 120 * time.Second},
		maxRetries: 3,
	}
}

// listenURL builds the /v1/listen URL with diarization and formatting enabled
func (c *DeepgramClient) listenURL() string {
	q := url.Values{}
	q.Set("model", c.model)
	q.Set("diarize", "true")
	q.Set("smart_format", "true")
	q.Set("punctuate", "true")
	q.Set("paragraphs", "true")
	return fmt.Sprintf("%s/v1/listen?%s", c.baseURL, q.Encode())
}

// Transcribe sends audio bytes to Deepgram and returns the raw response body.
// Server-side (5xx) and transport failures are retried with exponential
// backoff; client errors are returned immediately.
func (c *DeepgramClient) Transcribe(ctx context.Context, audio []byte, mimeType string) ([]byte, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("audio payload is empty")
	}
	if mimeType == "" {
		mimeType = "audio/mpeg"
	}

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.listenURL(), bytes.NewReader(audio))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Token "+c.apiKey)
		req.Header.Set("Content-Type", mimeType)

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("deepgram returned status %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("deepgram returned status %d: %s", resp.StatusCode, string(data)))
		}
		body = data
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return body, nil
}

// SupportedMimeTypes lists the audio formats accepted for upload
func SupportedMimeTypes() []string {
	return []string{
		"audio/mpeg",
		"audio/mp3",
		"audio/wav",
		"audio/m4a",
		"audio/x-m4a",
		"audio/aac",
		"audio/ogg",
		"audio/webm",
		"audio/flac",
	}
}

// IsSupportedMimeType reports whether the given mime type can be transcribed
func IsSupportedMimeType(mimeType string) bool {
	for _, mt := range SupportedMimeTypes() {
		if mt == mimeType {
			return true
		}
	}
	return false
}
