package llm

import (
	"context"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/pkg/errors"

	"github.com/danilovkiri/dk_go_study_helper/internal/config"
	serviceErrors "github.com/danilovkiri/dk_go_study_helper/internal/service/errors"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/llm"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
)

// ProviderOpenAI is the OpenAI provider name.
const ProviderOpenAI = "openai"

var (
	_ llm.Provider = (*OpenAIProvider)(nil)
)

// OpenAIProvider completes conversations with the OpenAI chat completions API.
type OpenAIProvider struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewOpenAIProvider initializes an OpenAI client; retries are left to the router.
func NewOpenAIProvider(c *config.Config, httpClient *http.Client) *OpenAIProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(c.OpenAIKey),
		option.WithMaxRetries(0),
	}
	if c.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(c.OpenAIBaseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &OpenAIProvider{
		client:      openai.NewClient(opts...),
		model:       c.OpenAIModel,
		temperature: c.Temperature,
	}
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

// Complete sends the conversation as a chat completion request.
func (p *OpenAIProvider) Complete(ctx context.Context, messages []modelstudy.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(p.model),
		Messages:    make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)),
		Temperature: openai.Float(p.temperature),
	}
	for _, m := range messages {
		switch m.Role {
		case modelstudy.RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		case modelstudy.RoleAssistant:
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		}
	}
	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			return "", &serviceErrors.ProviderQuotaError{Provider: ProviderOpenAI, Err: err}
		}
		return "", errors.Wrap(err, "openai chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
