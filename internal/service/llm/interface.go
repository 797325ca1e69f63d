// Package llm defines the language model contracts used by the study helper.
package llm

import (
	"context"

	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
)

// Assistant answers a conversation with a single completion.
type Assistant interface {
	Complete(ctx context.Context, messages []modelstudy.Message) (string, error)
}

// Provider is one language model backend.
type Provider interface {
	Assistant
	Name() string
}
