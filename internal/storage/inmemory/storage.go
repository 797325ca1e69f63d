// Package inmemory provides functionality for dumping/retrieving study workspaces and community
// posts to/from local storage implemented as maps.
package inmemory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage/errors"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage/modelstorage"
)

// Check interface implementation explicitly
var (
	_ storage.StudyStorage = (*Storage)(nil)
)

// Journal persists an event before it is applied; a returned error cancels the change.
type Journal func(event modelstorage.Event) error

// Storage struct defines data structure handling and provides support for adding new implementations.
type Storage struct {
	mu       sync.Mutex
	reviews  map[string]modelstudy.Review
	messages map[string][]modelstudy.Message
	posts    []modelstorage.PostEntry
	bySlug   map[string]int
	comments map[string][]modelstudy.Comment
	journal  Journal
}

// InitStorage initializes a Storage object and sets its attributes.
func InitStorage() *Storage {
	return InitJournaledStorage(nil)
}

// InitJournaledStorage initializes a Storage object that reports every change to journal first.
func InitJournaledStorage(journal Journal) *Storage {
	return &Storage{
		reviews:  make(map[string]modelstudy.Review),
		messages: make(map[string][]modelstudy.Message),
		bySlug:   make(map[string]int),
		comments: make(map[string][]modelstudy.Comment),
		journal:  journal,
	}
}

// await runs fn in a goroutine and returns its result unless ctx is done first.
func await[T any](ctx context.Context, op string, fn func() (T, error)) (T, error) {
	// buffered so that an abandoned goroutine can still finish
	done := make(chan T, 1)
	failed := make(chan error, 1)
	go func() {
		res, err := fn()
		if err != nil {
			failed <- err
			return
		}
		done <- res
	}()

	var zero T
	select {
	case <-ctx.Done():
		log.Println(op+":", ctx.Err())
		return zero, &errors.ContextTimeoutExceededError{Err: ctx.Err()}
	case err := <-failed:
		log.Println(op+":", err)
		return zero, err
	case res := <-done:
		log.Debug(op + ": done")
		return res, nil
	}
}

// DumpReview replaces the review of a user.
func (s *Storage) DumpReview(ctx context.Context, userID string, review modelstudy.Review) error {
	_, err := await(ctx, "Dumping review", func() (struct{}, error) {
		return struct{}{}, s.commit(modelstorage.Event{Kind: modelstorage.EventReview, UserID: userID, Review: &review})
	})
	return err
}

// RetrieveReview returns the latest review of a user.
func (s *Storage) RetrieveReview(ctx context.Context, userID string) (modelstudy.Review, error) {
	return await(ctx, "Retrieving review", func() (modelstudy.Review, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		review, ok := s.reviews[userID]
		if !ok {
			return modelstudy.Review{}, &errors.NotFoundError{ID: userID}
		}
		return review, nil
	})
}

// DumpMessages appends messages to the chat history of a user.
func (s *Storage) DumpMessages(ctx context.Context, userID string, messages ...modelstudy.Message) error {
	_, err := await(ctx, "Dumping messages", func() (struct{}, error) {
		return struct{}{}, s.commit(modelstorage.Event{Kind: modelstorage.EventMessages, UserID: userID, Messages: messages})
	})
	return err
}

// RetrieveMessages returns the chat history of a user in order.
func (s *Storage) RetrieveMessages(ctx context.Context, userID string) ([]modelstudy.Message, error) {
	return await(ctx, "Retrieving messages", func() ([]modelstudy.Message, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return append([]modelstudy.Message{}, s.messages[userID]...), nil
	})
}

// DumpPost stores a new post and returns it with its sequence number.
func (s *Storage) DumpPost(ctx context.Context, post modelstudy.Post) (modelstudy.Post, error) {
	return await(ctx, "Dumping post", func() (modelstudy.Post, error) {
		entry := modelstorage.NewPostEntry(post)
		if err := s.commit(modelstorage.Event{Kind: modelstorage.EventPost, Slug: post.Slug, Post: &entry}); err != nil {
			return modelstudy.Post{}, err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.postLocked(s.bySlug[post.Slug]), nil
	})
}

// RetrievePost returns a post with its comments.
func (s *Storage) RetrievePost(ctx context.Context, slug string) (modelstudy.Post, error) {
	return await(ctx, "Retrieving post", func() (modelstudy.Post, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		idx, ok := s.bySlug[slug]
		if !ok {
			return modelstudy.Post{}, &errors.NotFoundError{ID: slug}
		}
		return s.postLocked(idx), nil
	})
}

// RetrievePosts returns posts in creation order, filtered by a case-insensitive query on title and content.
func (s *Storage) RetrievePosts(ctx context.Context, query string) ([]modelstudy.Post, error) {
	return await(ctx, "Retrieving posts", func() ([]modelstudy.Post, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		q := strings.ToLower(strings.TrimSpace(query))
		posts := make([]modelstudy.Post, 0, len(s.posts))
		for idx, entry := range s.posts {
			if q != "" && !strings.Contains(strings.ToLower(entry.Title), q) && !strings.Contains(strings.ToLower(entry.Content), q) {
				continue
			}
			posts = append(posts, s.postLocked(idx))
		}
		return posts, nil
	})
}

// DumpComment appends a comment to an existing post.
func (s *Storage) DumpComment(ctx context.Context, slug string, comment modelstudy.Comment) error {
	_, err := await(ctx, "Dumping comment", func() (struct{}, error) {
		return struct{}{}, s.commit(modelstorage.Event{Kind: modelstorage.EventComment, Slug: slug, Comment: &comment})
	})
	return err
}

// GetStats returns storage-wide counters.
func (s *Storage) GetStats(ctx context.Context) (modelstorage.Stats, error) {
	return await(ctx, "Retrieving stats", func() (modelstorage.Stats, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		stats := modelstorage.Stats{Workspaces: len(s.reviews), Posts: len(s.posts)}
		for _, history := range s.messages {
			stats.Messages += len(history)
		}
		for _, comments := range s.comments {
			stats.Comments += len(comments)
		}
		return stats, nil
	})
}

// Apply replays a journal event without journaling it again.
func (s *Storage) Apply(event modelstorage.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(event); err != nil {
		return err
	}
	s.applyLocked(event)
	return nil
}

// PingDB is a mock for PSQL DB pinger for inmemory DB handling.
func (s *Storage) PingDB() error {
	return nil
}

// CloseDB is a mock for PSQL DB closer for inmemory DB handling.
func (s *Storage) CloseDB() error {
	return nil
}

// commit validates, journals and applies an event atomically.
func (s *Storage) commit(event modelstorage.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(event); err != nil {
		return err
	}
	if s.journal != nil {
		if err := s.journal(event); err != nil {
			return &errors.FileWriteError{Err: err}
		}
	}
	s.applyLocked(event)
	return nil
}

func (s *Storage) checkLocked(event modelstorage.Event) error {
	switch event.Kind {
	case modelstorage.EventReview:
		if event.Review == nil {
			return fmt.Errorf("review event for %s carries no review", event.UserID)
		}
	case modelstorage.EventMessages:
	case modelstorage.EventPost:
		if event.Post == nil {
			return fmt.Errorf("post event for %s carries no post", event.Slug)
		}
		if _, ok := s.bySlug[event.Post.Slug]; ok {
			return &errors.AlreadyExistsError{ID: event.Post.Slug}
		}
	case modelstorage.EventComment:
		if event.Comment == nil {
			return fmt.Errorf("comment event for %s carries no comment", event.Slug)
		}
		if _, ok := s.bySlug[event.Slug]; !ok {
			return &errors.NotFoundError{ID: event.Slug}
		}
	default:
		return fmt.Errorf("unknown event kind %q", event.Kind)
	}
	return nil
}

func (s *Storage) applyLocked(event modelstorage.Event) {
	switch event.Kind {
	case modelstorage.EventReview:
		s.reviews[event.UserID] = *event.Review
	case modelstorage.EventMessages:
		s.messages[event.UserID] = append(s.messages[event.UserID], event.Messages...)
	case modelstorage.EventPost:
		s.bySlug[event.Post.Slug] = len(s.posts)
		s.posts = append(s.posts, *event.Post)
	case modelstorage.EventComment:
		s.comments[event.Slug] = append(s.comments[event.Slug], *event.Comment)
	}
}

func (s *Storage) postLocked(idx int) modelstudy.Post {
	entry := s.posts[idx]
	post := entry.ToPost(idx + 1)
	post.Comments = append(post.Comments, s.comments[entry.Slug]...)
	return post
}
