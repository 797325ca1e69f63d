// Package community implements the community board on top of a post storage.
package community

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/speps/go-hashids/v2"

	"github.com/danilovkiri/dk_go_study_helper/internal/service/community"
	serviceErrors "github.com/danilovkiri/dk_go_study_helper/internal/service/errors"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/extractor"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_study_helper/internal/storage/errors"
)

const SaltKey = "Some Hashing Key"
const MinLength = 5

// AttachmentFormats lists the extensions accepted as post attachments.
var AttachmentFormats = map[string]bool{"pdf": true, "pptx": true, "docx": true}

// Check interface implementation explicitly
var (
	_ community.Board = (*Community)(nil)
)

// Community struct defines data structure handling and provides support for adding new implementations.
type Community struct {
	hashID  *hashids.HashID
	counter atomic.Int64
	storage storage.PostStorage
}

// InitCommunity initializes a Community object and sets its attributes.
func InitCommunity(s storage.PostStorage) (*Community, error) {
	if s == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil storage was passed to community initializer"}
	}
	hd := hashids.NewData()
	hd.Salt = SaltKey
	hd.MinLength = MinLength
	hashID, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, &serviceErrors.ServiceInitHashError{Msg: err.Error()}
	}
	return &Community{
		hashID:  hashID,
		storage: s,
	}, nil
}

// Publish stores a new post with its attachments.
func (c *Community) Publish(ctx context.Context, userID, title, content string, files []modelstudy.File) (modelstudy.Post, error) {
	if strings.TrimSpace(title) == "" {
		return modelstudy.Post{}, &serviceErrors.EmptyFieldError{Field: "title"}
	}
	if strings.TrimSpace(content) == "" {
		return modelstudy.Post{}, &serviceErrors.EmptyFieldError{Field: "content"}
	}
	attachments := make([]modelstudy.Attachment, 0, len(files))
	for _, f := range files {
		ext := extractor.Format(f.Name)
		if !AttachmentFormats[ext] {
			return modelstudy.Post{}, &serviceErrors.UnsupportedFormatError{Name: f.Name, Format: ext}
		}
		attachments = append(attachments, modelstudy.Attachment{Name: f.Name, Ext: ext, Size: len(f.Data), Data: f.Data})
	}
	slug, err := c.generateSlug()
	if err != nil {
		return modelstudy.Post{}, &serviceErrors.ServiceEncodingHashError{Msg: err.Error()}
	}
	post, err := c.storage.DumpPost(ctx, modelstudy.Post{
		Slug:        slug,
		UserID:      userID,
		Title:       title,
		Content:     content,
		Attachments: attachments,
		Comments:    []modelstudy.Comment{},
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return modelstudy.Post{}, err
	}
	log.WithFields(log.Fields{"user": userID, "slug": slug}).Println("Publishing post: done")
	return post, nil
}

// List returns posts in creation order, optionally filtered by a case-insensitive query.
func (c *Community) List(ctx context.Context, query string) ([]modelstudy.Post, error) {
	return c.storage.RetrievePosts(ctx, query)
}

// Get returns a post with its comments.
func (c *Community) Get(ctx context.Context, slug string) (modelstudy.Post, error) {
	return c.storage.RetrievePost(ctx, slug)
}

// Comment adds an anonymous comment signed with a random user alias.
func (c *Community) Comment(ctx context.Context, slug, content string) (modelstudy.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return modelstudy.Comment{}, &serviceErrors.EmptyFieldError{Field: "content"}
	}
	comment := modelstudy.Comment{
		ID:        uuid.NewString(),
		Author:    fmt.Sprintf("user_%d", 100+rand.IntN(900)),
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := c.storage.DumpComment(ctx, slug, comment); err != nil {
		return modelstudy.Comment{}, err
	}
	return comment, nil
}

// Attachment returns one attachment of a post by file name.
func (c *Community) Attachment(ctx context.Context, slug, name string) (modelstudy.Attachment, error) {
	post, err := c.storage.RetrievePost(ctx, slug)
	if err != nil {
		return modelstudy.Attachment{}, err
	}
	for _, a := range post.Attachments {
		if a.Name == name {
			return a, nil
		}
	}
	return modelstudy.Attachment{}, &storageErrors.NotFoundError{ID: slug + "/" + name}
}

// generateSlug generates and returns a short unique identifier for a post.
func (c *Community) generateSlug() (string, error) {
	now := time.Now().UnixNano()
	return c.hashID.Encode([]int{int(now), int(c.counter.Add(1))})
}
