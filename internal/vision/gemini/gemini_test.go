package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/genai"

	"github.com/jmylchreest/undertone/internal/tone"
	"github.com/jmylchreest/undertone/internal/vision"
)

type fakeGenerator struct {
	response *genai.GenerateContentResponse
	err      error

	gotModel    string
	gotContents []*genai.Content
	gotConfig   *genai.GenerateContentConfig
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.gotModel = model
	f.gotContents = contents
	f.gotConfig = config
	return f.response, f.err
}

func textResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: parts}},
		},
	}
}

func newTestEstimator(gen contentGenerator) *Estimator {
	cfg := DefaultConfig()
	cfg.APIKey = "test-key"
	return &Estimator{config: cfg, logger: hclog.NewNullLogger(), generator: gen}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Model != DefaultModel {
		t.Errorf("Model = %s, want %s", cfg.Model, DefaultModel)
	}
	if cfg.Backend != BackendGeminiAPI {
		t.Errorf("Backend = %s, want %s", cfg.Backend, BackendGeminiAPI)
	}
	if cfg.APIKey != "" {
		t.Error("DefaultConfig should not read an API key")
	}
}

func TestConfigWithEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvModel, "gemini-2.5-pro")
	t.Setenv(EnvBackend, BackendVertexAI)

	cfg := DefaultConfig().WithEnv()
	if cfg.APIKey != "env-key" || cfg.Model != "gemini-2.5-pro" || cfg.Backend != BackendVertexAI {
		t.Errorf("WithEnv() = %+v, want values from environment", cfg)
	}

	explicit := Config{Model: "gemini-2.5-flash-lite", Backend: BackendGeminiAPI, APIKey: "flag-key"}.WithEnv()
	if explicit.Model != "gemini-2.5-flash-lite" || explicit.APIKey != "flag-key" {
		t.Errorf("WithEnv() overrode explicit values: %+v", explicit)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		fails   bool
	}{
		{name: "valid", mutate: func(c *Config) { c.APIKey = "k" }},
		{name: "missing key", mutate: func(c *Config) {}, wantErr: ErrMissingAPIKey, fails: true},
		{name: "vertex without key", mutate: func(c *Config) { c.Backend = BackendVertexAI }},
		{name: "bad backend", mutate: func(c *Config) { c.Backend = "openai"; c.APIKey = "k" }, fails: true},
		{name: "no model", mutate: func(c *Config) { c.Model = ""; c.APIKey = "k" }, fails: true},
		{name: "temperature too high", mutate: func(c *Config) { c.Temperature = 3; c.APIKey = "k" }, fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.fails {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.fails)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEstimate(t *testing.T) {
	gen := &fakeGenerator{
		response: textResponse(
			&genai.Part{Text: "thinking about lighting", Thought: true},
			&genai.Part{Text: `{"temperature":"Warm","season":"autumn",`},
			&genai.Part{Text: `"colorHex":"#C08A60","lightingBias":0.4}`},
		),
	}
	est := newTestEstimator(gen)

	got, err := est.Estimate(context.Background(), vision.Request{
		Image:    []byte{0xFF, 0xD8, 0xFF},
		MIMEType: "image/jpeg",
		Hints:    []string{"tungsten light"},
	})
	if err != nil {
		t.Fatalf("Estimate() returned error: %v", err)
	}

	if got.Temperature != "Warm" || got.Season != "autumn" || got.ColorHex != "#C08A60" {
		t.Errorf("Estimate() = %+v, want the model's fields", got)
	}
	if got.LightingBias == nil || *got.LightingBias != 0.4 {
		t.Errorf("Estimate() lighting bias = %v, want 0.4", got.LightingBias)
	}

	if gen.gotModel != DefaultModel {
		t.Errorf("model = %s, want %s", gen.gotModel, DefaultModel)
	}
	if len(gen.gotContents) != 1 || len(gen.gotContents[0].Parts) != 2 {
		t.Fatalf("expected one content with text and image parts, got %+v", gen.gotContents)
	}
	prompt := gen.gotContents[0].Parts[0].Text
	if !strings.Contains(prompt, "- tungsten light") {
		t.Errorf("prompt does not carry hints:\n%s", prompt)
	}
	blob := gen.gotContents[0].Parts[1].InlineData
	if blob == nil || blob.MIMEType != "image/jpeg" || len(blob.Data) != 3 {
		t.Errorf("image part = %+v, want the request image", blob)
	}
	if gen.gotConfig == nil || gen.gotConfig.ResponseMIMEType != "application/json" {
		t.Error("expected a JSON response MIME type")
	}
	if gen.gotConfig.ResponseSchema == nil || gen.gotConfig.ResponseSchema.Type != genai.TypeObject {
		t.Error("expected an object response schema")
	}
}

func TestEstimateGarbageAnswer(t *testing.T) {
	est := newTestEstimator(&fakeGenerator{response: textResponse(&genai.Part{Text: "I cannot help with that."})})

	got, err := est.Estimate(context.Background(), vision.Request{Image: []byte{1}})
	if err != nil {
		t.Fatalf("Estimate() returned error: %v", err)
	}
	if got != (tone.Estimate{}) {
		t.Errorf("Estimate() = %+v, want empty estimate", got)
	}
}

func TestEstimateErrors(t *testing.T) {
	ctx := context.Background()
	req := vision.Request{Image: []byte{1}}

	if _, err := newTestEstimator(&fakeGenerator{}).Estimate(ctx, vision.Request{}); !errors.Is(err, vision.ErrEmptyRequest) {
		t.Errorf("empty image error = %v, want ErrEmptyRequest", err)
	}

	apiErr := errors.New("quota exceeded")
	if _, err := newTestEstimator(&fakeGenerator{err: apiErr}).Estimate(ctx, req); !errors.Is(err, apiErr) {
		t.Errorf("API error = %v, want wrapped %v", err, apiErr)
	}

	if _, err := newTestEstimator(&fakeGenerator{}).Estimate(ctx, req); !errors.Is(err, vision.ErrNoResponse) {
		t.Errorf("nil response error = %v, want ErrNoResponse", err)
	}

	empty := &genai.GenerateContentResponse{}
	if _, err := newTestEstimator(&fakeGenerator{response: empty}).Estimate(ctx, req); !errors.Is(err, vision.ErrNoResponse) {
		t.Errorf("no candidates error = %v, want ErrNoResponse", err)
	}

	thoughtsOnly := textResponse(&genai.Part{Text: "hmm", Thought: true})
	if _, err := newTestEstimator(&fakeGenerator{response: thoughtsOnly}).Estimate(ctx, req); !errors.Is(err, vision.ErrNoResponse) {
		t.Errorf("thoughts-only error = %v, want ErrNoResponse", err)
	}

	blocked := &genai.GenerateContentResponse{
		PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: "SAFETY"},
	}
	_, err := newTestEstimator(&fakeGenerator{response: blocked}).Estimate(ctx, req)
	if err == nil || !strings.Contains(err.Error(), "blocked") {
		t.Errorf("blocked error = %v, want a blocked-request error", err)
	}
}

func TestIsVisionModel(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"models/gemini-2.5-flash", true},
		{"models/gemini-2.5-pro", true},
		{"models/gemini-embedding-001", false},
		{"models/gemini-2.5-flash-preview-tts", false},
		{"models/gemini-2.5-flash-image", false},
		{"models/imagen-4.0-generate-001", false},
		{"models/text-bison-001", false},
	}

	for _, tt := range tests {
		if got := isVisionModel(tt.name); got != tt.want {
			t.Errorf("isVisionModel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestListModelsWithoutClient(t *testing.T) {
	models, err := newTestEstimator(&fakeGenerator{}).ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels() returned error: %v", err)
	}
	if len(models) != len(KnownModels()) {
		t.Errorf("ListModels() returned %d models, want the %d known models", len(models), len(KnownModels()))
	}
	if models[0].ID != DefaultModel {
		t.Errorf("first known model = %s, want %s", models[0].ID, DefaultModel)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := New(context.Background(), cfg, nil); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("New() error = %v, want ErrMissingAPIKey", err)
	}
}
