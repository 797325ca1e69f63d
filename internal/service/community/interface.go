// Package community provides interfaces for types to be in compliance with.
package community

import (
	"context"

	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
)

// Board is the community board: shared documents and anonymous discussion.
type Board interface {
	Publish(ctx context.Context, userID, title, content string, files []modelstudy.File) (modelstudy.Post, error)
	List(ctx context.Context, query string) ([]modelstudy.Post, error)
	Get(ctx context.Context, slug string) (modelstudy.Post, error)
	Comment(ctx context.Context, slug, content string) (modelstudy.Comment, error)
	Attachment(ctx context.Context, slug, name string) (modelstudy.Attachment, error)
}
