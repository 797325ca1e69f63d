// Package storage provides interfaces for types to be in compliance with.
package storage

import (
	"context"

	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage/modelstorage"
)

// ReviewStorage keeps the latest review of every user.
type ReviewStorage interface {
	DumpReview(ctx context.Context, userID string, review modelstudy.Review) error
	RetrieveReview(ctx context.Context, userID string) (modelstudy.Review, error)
}

// MessageStorage keeps the chat history of every user.
type MessageStorage interface {
	DumpMessages(ctx context.Context, userID string, messages ...modelstudy.Message) error
	RetrieveMessages(ctx context.Context, userID string) ([]modelstudy.Message, error)
}

// PostStorage keeps community posts and their comments.
type PostStorage interface {
	DumpPost(ctx context.Context, post modelstudy.Post) (modelstudy.Post, error)
	RetrievePost(ctx context.Context, slug string) (modelstudy.Post, error)
	RetrievePosts(ctx context.Context, query string) ([]modelstudy.Post, error)
	DumpComment(ctx context.Context, slug string, comment modelstudy.Comment) error
}

// StudyStorage defines a set of embedded interfaces for types implementing StudyStorage.
type StudyStorage interface {
	ReviewStorage
	MessageStorage
	PostStorage
	GetStats(ctx context.Context) (modelstorage.Stats, error)
	PingDB() error
	CloseDB() error
}
