package genai

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	googleai "google.golang.org/genai"
)

// DefaultEndpoint is the Generative Language API base URL. The SDK adds the
// API version.
const DefaultEndpoint = "https://generativelanguage.googleapis.com/"

var (
	errNoImage = errors.New("no image returned")
	errNoText  = errors.New("no text returned")
)

// GeminiConfig configures the Gemini client.
type GeminiConfig struct {
	APIKey     string
	Endpoint   string
	ImageModel string
	TextModel  string
	Timeout    time.Duration
}

// Gemini generates backgrounds with Imagen and greetings with Gemini
// through the Google GenAI SDK.
type Gemini struct {
	cfg    GeminiConfig
	client *googleai.Client
}

// NewGemini returns a client. The API key is required.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is not set")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = "imagen-4.0-generate-001"
	}
	if cfg.TextModel == "" {
		cfg.TextModel = "gemini-2.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if !strings.HasSuffix(cfg.Endpoint, "/") {
		cfg.Endpoint += "/"
	}

	client, err := googleai.NewClient(ctx, &googleai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     googleai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: cfg.Timeout},
		HTTPOptions: googleai.HTTPOptions{BaseURL: cfg.Endpoint},
	})
	if err != nil {
		return nil, err
	}
	return &Gemini{cfg: cfg, client: client}, nil
}

func (g *Gemini) GenerateBackgroundImage(ctx context.Context) (string, error) {
	resp, err := g.client.Models.GenerateImages(ctx, g.cfg.ImageModel, backgroundPrompt, &googleai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "9:16",
		OutputMIMEType: "image/png",
	})
	if err != nil {
		return "", &ServiceError{Op: OpBackground, Err: err}
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil || len(resp.GeneratedImages[0].Image.ImageBytes) == 0 {
		return "", &ServiceError{Op: OpBackground, Err: errNoImage}
	}
	return base64.StdEncoding.EncodeToString(resp.GeneratedImages[0].Image.ImageBytes), nil
}

func (g *Gemini) GenerateGreeting(ctx context.Context, name, age, profession string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.TextModel, googleai.Text(GreetingPrompt(name, age, profession)), nil)
	if err != nil {
		return "", &ServiceError{Op: OpGreeting, Err: err}
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &ServiceError{Op: OpGreeting, Err: errNoText}
	}
	return text, nil
}
