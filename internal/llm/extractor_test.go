package llm

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"unicode/utf8"

	"github.com/ppiankov/newstrust/internal/model"
)

// MockProvider is a scripted Provider for tests
type MockProvider struct {
	Reply    string
	Err      error
	Requests []CompletionRequest
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) IsAvailable(ctx context.Context) bool { return m.Err == nil }

func (m *MockProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return nil, m.Err
	}
	return &CompletionResponse{Text: m.Reply, Model: "mock"}, nil
}

func TestClaimExtractor_Extract(t *testing.T) {
	mock := &MockProvider{Reply: "1. 정부가 예산안을 발표했다\n\n2) 국회는 다음 주 표결한다\n3. 정부가 예산안을 발표했다"}
	extractor := NewClaimExtractor(mock, 0)

	claims, err := extractor.Extract(context.Background(), "기사 본문")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	want := []string{"정부가 예산안을 발표했다", "국회는 다음 주 표결한다", "정부가 예산안을 발표했다"}
	if !reflect.DeepEqual(claims, want) {
		t.Errorf("claims = %#v, want %#v", claims, want)
	}
	if mock.Requests[0].System != ClaimSystemPrompt {
		t.Error("Expected claim system prompt")
	}
	if mock.Requests[0].Prompt != "기사 본문" {
		t.Errorf("Expected article text as prompt, got %q", mock.Requests[0].Prompt)
	}
}

func TestClaimExtractor_TruncatesInput(t *testing.T) {
	mock := &MockProvider{Reply: "1. x"}
	extractor := NewClaimExtractor(mock, 5)

	if _, err := extractor.Extract(context.Background(), "가나다라마바사"); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if n := utf8.RuneCountInString(mock.Requests[0].Prompt); n != 5 {
		t.Errorf("Expected 5 runes, got %d", n)
	}
}

func TestClaimExtractor_ProviderError(t *testing.T) {
	boom := errors.New("boom")
	extractor := NewClaimExtractor(&MockProvider{Err: boom}, 0)

	_, err := extractor.Extract(context.Background(), "text")
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped provider error, got %v", err)
	}
}

func TestClaimExtractor_EmptyReply(t *testing.T) {
	extractor := NewClaimExtractor(&MockProvider{Reply: "\n  \n"}, 0)

	claims, err := extractor.Extract(context.Background(), "text")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(claims) != 0 {
		t.Errorf("Expected no claims, got %v", claims)
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		provider string
		apiKey   string
		wantName string
		wantErr  bool
	}{
		{"openai", "k", "openai", false},
		{"OpenAI", "k", "openai", false},
		{"anthropic", "k", "anthropic", false},
		{"claude", "k", "anthropic", false},
		{"ollama", "", "ollama", false},
		{"openai", "", "", true},
		{"", "", "", true},
		{"gemini", "k", "", true},
	}

	for _, tt := range tests {
		p, err := NewProvider(Config{Provider: tt.provider, APIKey: tt.apiKey, Model: "m"})
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tt.provider)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.provider, err)
			continue
		}
		if p.Name() != tt.wantName {
			t.Errorf("%q: name = %s, want %s", tt.provider, p.Name(), tt.wantName)
		}
	}
}

func TestConfigFromModel(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.LLM.APIKey = "sk-test"
	cfg.HTTP.HTTPSProxy = "http://proxy:3128"

	c := ConfigFromModel(cfg)
	if c.Provider != "openai" || c.Model != "gpt-4o-mini" || c.APIKey != "sk-test" {
		t.Errorf("unexpected config: %+v", c)
	}
	if c.Temperature != 0.2 {
		t.Errorf("temperature = %v, want 0.2", c.Temperature)
	}
	if c.HTTPSProxy != "http://proxy:3128" {
		t.Errorf("proxy not carried over: %+v", c)
	}
}
