// Package reviewer provides interfaces for types to be in compliance with.
package reviewer

import (
	"context"

	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
)

// Processor reviews uploaded documents and answers questions about them.
type Processor interface {
	Review(ctx context.Context, userID string, files []modelstudy.File) (modelstudy.Review, error)
	Ask(ctx context.Context, userID, question string) (string, error)
	Workspace(ctx context.Context, userID string) (modelstudy.Review, error)
	History(ctx context.Context, userID string) ([]modelstudy.Message, error)
}
