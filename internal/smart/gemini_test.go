package smart

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ajanda/internal/task"
)

var testToday = time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

func newTestParser(t *testing.T, handler http.HandlerFunc) *GeminiParser {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	p := NewGeminiParser("test-key", "test-model")
	p.baseURL = srv.URL
	return p
}

func geminiReply(t *testing.T, w http.ResponseWriter, payload any) {
	t.Helper()
	text, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": string(text)}}}},
		},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Fatalf("encode reply: %v", err)
	}
}

func TestInterpretMapsFields(t *testing.T) {
	p := newTestParser(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/test-model:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Error("missing api key header")
		}
		geminiReply(t, w, map[string]any{
			"title":       "Dentist",
			"description": "checkup",
			"date":        "2025-01-11",
			"time":        "14:00",
			"priority":    "HIGH",
		})
	})

	d, err := p.Interpret(context.Background(), "dentist tomorrow at 14:00", testToday)
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	want := task.Draft{Title: "Dentist", Description: "checkup", Date: "2025-01-11", Time: "14:00", Priority: task.High}
	if d != want {
		t.Errorf("draft = %+v, want %+v", d, want)
	}
}

func TestInterpretDefaults(t *testing.T) {
	t.Run("missing date falls back to today", func(t *testing.T) {
		p := newTestParser(t, func(w http.ResponseWriter, r *http.Request) {
			geminiReply(t, w, map[string]any{"title": "Buy milk", "priority": "MEDIUM"})
		})
		d, err := p.Interpret(context.Background(), "buy milk", testToday)
		if err != nil {
			t.Fatalf("Interpret failed: %v", err)
		}
		if d.Date != "2025-01-10" {
			t.Errorf("date = %s, want 2025-01-10", d.Date)
		}
		if d.Time != "" {
			t.Errorf("time should stay empty, got %q", d.Time)
		}
	})

	t.Run("unknown priority falls back to medium", func(t *testing.T) {
		p := newTestParser(t, func(w http.ResponseWriter, r *http.Request) {
			geminiReply(t, w, map[string]any{"title": "Buy milk", "priority": "URGENT"})
		})
		d, err := p.Interpret(context.Background(), "buy milk", testToday)
		if err != nil {
			t.Fatalf("Interpret failed: %v", err)
		}
		if d.Priority != task.Medium {
			t.Errorf("priority = %s, want MEDIUM", d.Priority)
		}
	})
}

func TestInterpretMissingKeyShortCircuits(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	p := NewGeminiParser("", "test-model")
	p.baseURL = srv.URL
	_, err := p.Interpret(context.Background(), "buy milk", testToday)
	if !errors.Is(err, ErrNotUnderstood) {
		t.Fatalf("expected ErrNotUnderstood, got %v", err)
	}
	if called {
		t.Error("must not hit the network without a credential")
	}
}

func TestInterpretNotUnderstood(t *testing.T) {
	t.Run("empty title", func(t *testing.T) {
		p := newTestParser(t, func(w http.ResponseWriter, r *http.Request) {
			geminiReply(t, w, map[string]any{"title": "  ", "priority": "LOW"})
		})
		if _, err := p.Interpret(context.Background(), "???", testToday); !errors.Is(err, ErrNotUnderstood) {
			t.Errorf("expected ErrNotUnderstood, got %v", err)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		p := newTestParser(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates": []}`))
		})
		if _, err := p.Interpret(context.Background(), "???", testToday); !errors.Is(err, ErrNotUnderstood) {
			t.Errorf("expected ErrNotUnderstood, got %v", err)
		}
	})

	t.Run("unparsable part", func(t *testing.T) {
		p := newTestParser(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "not json"}]}}]}`))
		})
		if _, err := p.Interpret(context.Background(), "???", testToday); !errors.Is(err, ErrNotUnderstood) {
			t.Errorf("expected ErrNotUnderstood, got %v", err)
		}
	})
}

func TestInterpretServiceFailure(t *testing.T) {
	p := newTestParser(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`))
	})
	_, err := p.Interpret(context.Background(), "buy milk", testToday)
	if err == nil || errors.Is(err, ErrNotUnderstood) {
		t.Fatalf("service failure must be an ordinary error, got %v", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("error should carry the API message, got %v", err)
	}
}
