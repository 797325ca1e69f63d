package llm

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	"github.com/danilovkiri/dk_go_study_helper/internal/config"
	serviceErrors "github.com/danilovkiri/dk_go_study_helper/internal/service/errors"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/llm"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
)

// ProviderGemini is the Gemini provider name.
const ProviderGemini = "gemini"

var (
	_ llm.Provider = (*GeminiProvider)(nil)
)

// GeminiProvider completes conversations with the Gemini API.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGeminiProvider initializes a Gemini API client.
func NewGeminiProvider(ctx context.Context, c *config.Config, httpClient *http.Client) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     c.GeminiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, errors.Wrap(err, "init gemini client")
	}
	return &GeminiProvider{
		client:      client,
		model:       c.GeminiModel,
		temperature: float32(c.Temperature),
	}, nil
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string {
	return ProviderGemini
}

// Complete sends system messages as the system instruction and the rest as the conversation.
func (p *GeminiProvider) Complete(ctx context.Context, messages []modelstudy.Message) (string, error) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case modelstudy.RoleSystem:
			system = append(system, m.Content)
		case modelstudy.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	if len(contents) == 0 {
		return "", errors.New("gemini needs at least one non-system message")
	}
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(p.temperature),
	}
	if len(system) > 0 {
		cfg.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n"), genai.RoleUser)
	}
	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil {
		if isGeminiQuota(err) {
			return "", &serviceErrors.ProviderQuotaError{Provider: ProviderGemini, Err: err}
		}
		return "", errors.Wrap(err, "gemini generate content")
	}
	return strings.TrimSpace(resp.Text()), nil
}

func isGeminiQuota(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code == http.StatusTooManyRequests
	}
	return false
}
