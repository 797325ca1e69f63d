package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilovkiri/dk_go_study_helper/internal/config"
	serviceErrors "github.com/danilovkiri/dk_go_study_helper/internal/service/errors"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
)

var conversation = []modelstudy.Message{
	{Role: modelstudy.RoleSystem, Content: "Document: mitosis"},
	{Role: modelstudy.RoleUser, Content: "Summarize"},
	{Role: modelstudy.RoleAssistant, Content: "Cells divide."},
	{Role: modelstudy.RoleUser, Content: "Shorter"},
}

func testConfig() *config.Config {
	return &config.Config{
		OpenAIKey:     "sk-test",
		OpenAIModel:   "gpt-4",
		OpenAIBaseURL: "https://llm.test/v1/",
		GeminiKey:     "gm-test",
		GeminiModel:   "gemini-1.5-flash",
		Temperature:   0.7,
	}
}

func interceptedClient(t *testing.T) *http.Client {
	client := &http.Client{}
	gock.InterceptClient(client)
	t.Cleanup(func() {
		gock.RestoreClient(client)
		gock.Off()
	})
	return client
}

func TestOpenAIProvider_Complete(t *testing.T) {
	client := interceptedClient(t)
	gock.New("https://llm.test").
		Post("/v1/chat/completions").
		MatchHeader("Authorization", "Bearer sk-test").
		Reply(200).
		JSON(map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "gpt-4",
			"choices": []map[string]interface{}{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]interface{}{"role": "assistant", "content": "  Cells split.\n"},
			}},
		})

	p := NewOpenAIProvider(testConfig(), client)
	answer, err := p.Complete(context.Background(), conversation)
	require.NoError(t, err)
	assert.Equal(t, "Cells split.", answer)
	assert.Equal(t, ProviderOpenAI, p.Name())
	assert.True(t, gock.IsDone())
}

func TestOpenAIProvider_Quota(t *testing.T) {
	client := interceptedClient(t)
	gock.New("https://llm.test").
		Post("/v1/chat/completions").
		Reply(429).
		JSON(map[string]interface{}{
			"error": map[string]interface{}{
				"message": "You exceeded your current quota",
				"type":    "insufficient_quota",
				"code":    "insufficient_quota",
			},
		})

	p := NewOpenAIProvider(testConfig(), client)
	_, err := p.Complete(context.Background(), conversation)
	var quota *serviceErrors.ProviderQuotaError
	require.True(t, errors.As(err, &quota))
	assert.Equal(t, ProviderOpenAI, quota.Provider)
}

func TestOpenAIProvider_ServerError(t *testing.T) {
	client := interceptedClient(t)
	gock.New("https://llm.test").
		Post("/v1/chat/completions").
		Reply(500).
		JSON(map[string]interface{}{"error": map[string]interface{}{"message": "boom"}})

	p := NewOpenAIProvider(testConfig(), client)
	_, err := p.Complete(context.Background(), conversation)
	require.Error(t, err)
	var quota *serviceErrors.ProviderQuotaError
	assert.False(t, errors.As(err, &quota))
}

func TestGeminiProvider_Complete(t *testing.T) {
	client := interceptedClient(t)
	gock.New("https://generativelanguage.googleapis.com").
		Post("/v1beta/models/gemini-1.5-flash:generateContent").
		MatchHeader("x-goog-api-key", "gm-test").
		Reply(200).
		JSON(map[string]interface{}{
			"candidates": []map[string]interface{}{{
				"content": map[string]interface{}{
					"role":  "model",
					"parts": []map[string]interface{}{{"text": "Mitosis makes two cells. "}},
				},
				"finishReason": "STOP",
			}},
		})

	p, err := NewGeminiProvider(context.Background(), testConfig(), client)
	require.NoError(t, err)
	answer, err := p.Complete(context.Background(), conversation)
	require.NoError(t, err)
	assert.Equal(t, "Mitosis makes two cells.", answer)
	assert.True(t, gock.IsDone())
}

func TestGeminiProvider_Quota(t *testing.T) {
	client := interceptedClient(t)
	gock.New("https://generativelanguage.googleapis.com").
		Post("/v1beta/models/gemini-1.5-flash:generateContent").
		Persist().
		Reply(429).
		JSON(map[string]interface{}{
			"error": map[string]interface{}{
				"code":    429,
				"message": "Resource has been exhausted",
				"status":  "RESOURCE_EXHAUSTED",
			},
		})

	p, err := NewGeminiProvider(context.Background(), testConfig(), client)
	require.NoError(t, err)
	_, err = p.Complete(context.Background(), conversation)
	var quota *serviceErrors.ProviderQuotaError
	require.True(t, errors.As(err, &quota))
	assert.Equal(t, ProviderGemini, quota.Provider)
}

func TestGeminiProvider_OnlySystemMessages(t *testing.T) {
	p, err := NewGeminiProvider(context.Background(), testConfig(), &http.Client{})
	require.NoError(t, err)
	_, err = p.Complete(context.Background(), []modelstudy.Message{{Role: modelstudy.RoleSystem, Content: "x"}})
	assert.Error(t, err)
}
