// Package vision provides interfaces for types to be in compliance with.
package vision

import (
	"context"

	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
)

// Comparer asks a model what a set of images has in common.
type Comparer interface {
	Compare(ctx context.Context, uploads []modelstudy.File, urls []string) (modelstudy.Comparison, error)
}
