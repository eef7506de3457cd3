// Package gemini implements vision.Estimator with Google's Gemini models through
// the Google Gen AI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/genai"

	"github.com/jmylchreest/undertone/internal/tone"
	"github.com/jmylchreest/undertone/internal/vision"
)

const (
	// modelPrefix is the prefix that Google API returns for model names.
	modelPrefix = "models/"

	// DefaultModel is the model used when none is specified.
	DefaultModel = "gemini-2.5-flash"

	// BackendGeminiAPI and BackendVertexAI select the Gen AI backend.
	BackendGeminiAPI = "gemini-api"
	BackendVertexAI  = "vertex-ai"

	// DefaultBackend is the backend used when none is specified.
	DefaultBackend = BackendGeminiAPI

	// DefaultTemperature keeps answers close to deterministic.
	DefaultTemperature = 0.2

	// jsonMIMEType requests a JSON-only answer.
	jsonMIMEType = "application/json"
)

// Environment variables read by Config.WithEnv.
const (
	EnvAPIKey  = "GOOGLE_API_KEY"
	EnvModel   = "UNDERTONE_MODEL"
	EnvBackend = "UNDERTONE_GENAI_BACKEND"
)

// ErrMissingAPIKey is returned when the Gemini API backend has no API key.
var ErrMissingAPIKey = errors.New("GOOGLE_API_KEY environment variable is required\nGet one at: https://aistudio.google.com/api-keys")

// Config configures the Gemini estimator.
type Config struct {
	Model       string
	Backend     string
	APIKey      string
	Temperature float32
}

// DefaultConfig returns the default configuration without reading the environment.
func DefaultConfig() Config {
	return Config{
		Model:       DefaultModel,
		Backend:     DefaultBackend,
		Temperature: DefaultTemperature,
	}
}

// WithEnv returns a copy of c with empty fields filled from the environment.
// An explicitly set model or backend is not overridden.
func (c Config) WithEnv() Config {
	if v := os.Getenv(EnvModel); v != "" && (c.Model == "" || c.Model == DefaultModel) {
		c.Model = v
	}
	if v := os.Getenv(EnvBackend); v != "" && (c.Backend == "" || c.Backend == DefaultBackend) {
		c.Backend = v
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv(EnvAPIKey)
	}
	return c
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	switch c.Backend {
	case BackendGeminiAPI:
		if c.APIKey == "" {
			return ErrMissingAPIKey
		}
	case BackendVertexAI:
	default:
		return fmt.Errorf("invalid backend: %s (valid backends: %s, %s)", c.Backend, BackendGeminiAPI, BackendVertexAI)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be within [0, 2], got %v", c.Temperature)
	}
	return nil
}

// contentGenerator is the subset of *genai.Models used by the estimator.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Estimator asks a Gemini model for a skin-tone estimate.
type Estimator struct {
	config    Config
	logger    hclog.Logger
	client    *genai.Client
	generator contentGenerator
}

var _ vision.Estimator = (*Estimator)(nil)

// New validates cfg and creates a Gen AI client for it.
func New(ctx context.Context, cfg Config, logger hclog.Logger) (*Estimator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("gemini")

	client, err := clientSetup(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Estimator{
		config:    cfg,
		logger:    logger,
		client:    client,
		generator: client.Models,
	}, nil
}

// clientSetup encapsulates client configuration, creation, and logging.
func clientSetup(ctx context.Context, cfg Config, logger hclog.Logger) (*genai.Client, error) {
	clientConfig := &genai.ClientConfig{}

	if cfg.Backend == BackendVertexAI {
		clientConfig.Backend = genai.BackendVertexAI
	} else {
		clientConfig.Backend = genai.BackendGeminiAPI
		clientConfig.APIKey = cfg.APIKey
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}

	backendName := "Gemini API"
	if client.ClientConfig().Backend == genai.BackendVertexAI {
		backendName = "Vertex AI"
	}
	logger.Debug("created client", "backend", backendName, "model", cfg.Model)

	return client, nil
}

// Config returns the estimator's configuration.
func (e *Estimator) Config() Config {
	return e.config
}

// Estimate sends the photo and hints to the model and parses its JSON answer.
// A well-formed but unusable answer is not an error; it yields an empty or
// partial estimate that the reconciler completes with defaults.
func (e *Estimator) Estimate(ctx context.Context, req vision.Request) (tone.Estimate, error) {
	if len(req.Image) == 0 {
		return tone.Estimate{}, vision.ErrEmptyRequest
	}

	mimeType := req.MIMEType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	prompt := vision.BuildPrompt(req.Hints)
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(req.Image, mimeType),
		}, genai.RoleUser),
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(e.config.Temperature),
		ResponseMIMEType: jsonMIMEType,
		ResponseSchema:   responseSchema(),
	}

	e.logger.Debug("calling GenerateContent", "model", e.config.Model, "bytes", len(req.Image), "mime", mimeType, "hints", len(req.Hints))

	response, err := e.generator.GenerateContent(ctx, e.config.Model, contents, genConfig)
	if err != nil {
		return tone.Estimate{}, fmt.Errorf("estimate request failed: %w", err)
	}

	text, err := responseText(response)
	if err != nil {
		return tone.Estimate{}, err
	}
	e.logger.Trace("model answer", "text", text)

	estimate := tone.ParseEstimate(text)
	e.logger.Debug("parsed estimate",
		"temperature", estimate.Temperature,
		"season", estimate.Season,
		"color", estimate.ColorHex)

	return estimate, nil
}

// responseText concatenates the answer text of the first candidate, skipping
// thought parts.
func responseText(response *genai.GenerateContentResponse) (string, error) {
	if response == nil {
		return "", vision.ErrNoResponse
	}
	if fb := response.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "", fmt.Errorf("request was blocked by safety system: %s", fb.BlockReason)
	}
	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", vision.ErrNoResponse
	}

	var b strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", vision.ErrNoResponse
	}
	return text, nil
}

// responseSchema constrains the model to the estimate's JSON shape.
func responseSchema() *genai.Schema {
	bounded := func(description string, lo, hi float64) *genai.Schema {
		return &genai.Schema{
			Type:        genai.TypeNumber,
			Description: description,
			Minimum:     genai.Ptr(lo),
			Maximum:     genai.Ptr(hi),
		}
	}

	temperatures := make([]string, 0, len(tone.Temperatures()))
	for _, t := range tone.Temperatures() {
		temperatures = append(temperatures, string(t))
	}
	seasons := make([]string, 0, len(tone.Seasons()))
	for _, s := range tone.Seasons() {
		seasons = append(seasons, string(s))
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"temperature":  {Type: genai.TypeString, Enum: temperatures},
			"season":       {Type: genai.TypeString, Enum: seasons},
			"colorHex":     {Type: genai.TypeString, Description: "representative skin colour as #RRGGBB"},
			"lightness":    bounded("how light the skin reads", 0, 1),
			"clarity":      bounded("how saturated the skin reads", 0, 1),
			"lightingBias": bounded("ambient light tint, negative cool, positive warm", -1, 1),
		},
		Required:         []string{"temperature", "season", "colorHex"},
		PropertyOrdering: []string{"temperature", "season", "colorHex", "lightness", "clarity", "lightingBias"},
	}
}

// ModelInfo describes a model that can answer image prompts.
type ModelInfo struct {
	ID          string
	DisplayName string
	Description string
}

// ListModels lists Gemini models from the API, falling back to KnownModels
// when the API returns nothing usable.
func (e *Estimator) ListModels(ctx context.Context) ([]ModelInfo, error) {
	if e.client == nil {
		return KnownModels(), nil
	}

	var models []ModelInfo
	for model, err := range e.client.Models.All(ctx) {
		if err != nil {
			if len(models) > 0 {
				e.logger.Warn("error during model listing, showing partial results", "error", err, "count", len(models))
				return models, nil
			}
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
		if model == nil || !isVisionModel(model.Name) {
			continue
		}
		models = append(models, ModelInfo{
			ID:          strings.TrimPrefix(model.Name, modelPrefix),
			DisplayName: model.DisplayName,
			Description: model.Description,
		})
	}

	if len(models) == 0 {
		e.logger.Warn("no vision models found via API, showing known models")
		return KnownModels(), nil
	}
	return models, nil
}

// isVisionModel reports whether a model name is a Gemini text model that
// accepts image input. Embedding, speech and image-generation variants are excluded.
func isVisionModel(name string) bool {
	lower := strings.ToLower(name)
	if !strings.Contains(lower, "gemini") {
		return false
	}
	for _, excluded := range []string{"embedding", "tts", "image", "audio"} {
		if strings.Contains(lower, excluded) {
			return false
		}
	}
	return true
}

// KnownModels returns a static list of models that accept image input.
func KnownModels() []ModelInfo {
	return []ModelInfo{
		{ID: "gemini-2.5-flash", DisplayName: "Gemini 2.5 Flash", Description: "Fast multimodal model (default)"},
		{ID: "gemini-2.5-flash-lite", DisplayName: "Gemini 2.5 Flash-Lite", Description: "Lowest cost multimodal model"},
		{ID: "gemini-2.5-pro", DisplayName: "Gemini 2.5 Pro", Description: "Highest quality multimodal reasoning"},
	}
}
