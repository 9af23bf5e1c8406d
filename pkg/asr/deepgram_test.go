package asr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/campaign-scribe/campaign-scribe/pkg/config"
)

func TestTranscribe_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Token test-key" {
			t.Fatalf("unexpected auth header %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "audio/wav" {
			t.Fatalf("unexpected content type %q", got)
		}
		q := r.URL.Query()
		if q.Get("diarize") != "true" || q.Get("paragraphs") != "true" {
			t.Fatalf("diarization options missing from query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": map[string]interface{}{"channels": []interface{}{}},
		})
	}))
	defer ts.Close()

	client := NewDeepgramClient(&config.DeepgramConfig{APIKey: "test-key", BaseURL: ts.URL})

	body, err := client.Transcribe(context.Background(), []byte("fake-audio"), "audio/wav")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if _, err := Decode(body); err != nil {
		t.Fatalf("response body not decodable: %v", err)
	}
}

func TestTranscribe_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	client := NewDeepgramClient(&config.DeepgramConfig{APIKey: "test-key", BaseURL: ts.URL})

	if _, err := client.Transcribe(context.Background(), []byte("fake-audio"), "audio/wav"); err == nil {
		t.Fatal("expected error on 400 response")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected a single attempt on 4xx, got %d", got)
	}
}

func TestTranscribe_ServerErrorRetried(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"results": map[string]interface{}{}})
	}))
	defer ts.Close()

	client := NewDeepgramClient(&config.DeepgramConfig{APIKey: "test-key", BaseURL: ts.URL})

	if _, err := client.Transcribe(context.Background(), []byte("fake-audio"), "audio/wav"); err != nil {
		t.Fatalf("Transcribe failed after retry: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestTranscribe_EmptyAudio(t *testing.T) {
	client := NewDeepgramClient(&config.DeepgramConfig{APIKey: "test-key"})
	if _, err := client.Transcribe(context.Background(), nil, "audio/wav"); err == nil {
		t.Fatal("expected error for empty audio")
	}
}

func TestIsSupportedMimeType(t *testing.T) {
	if !IsSupportedMimeType("audio/mpeg") {
		t.Fatal("audio/mpeg should be supported")
	}
	if IsSupportedMimeType("video/mp4") {
		t.Fatal("video/mp4 should not be supported")
	}
}
