// Package modelstorage provides locally used types and their structure for storage objects.
package modelstorage

import (
	"time"

	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
)

// Event kinds written to the file journal.
const (
	EventReview   = "review"
	EventMessages = "messages"
	EventPost     = "post"
	EventComment  = "comment"
)

// Stats holds storage-wide counters.
type Stats struct {
	Workspaces int `json:"workspaces"`
	Messages   int `json:"messages"`
	Posts      int `json:"posts"`
	Comments   int `json:"comments"`
}

// AttachmentEntry is an attachment with its payload, as persisted.
type AttachmentEntry struct {
	Name string `json:"name"`
	Ext  string `json:"ext"`
	Data []byte `json:"data"`
}

// PostEntry is a post without its comments, as persisted.
type PostEntry struct {
	Slug        string            `json:"slug"`
	UserID      string            `json:"userID"`
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	Attachments []AttachmentEntry `json:"attachments"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// Event is one line of the file journal.
type Event struct {
	Kind     string               `json:"kind"`
	UserID   string               `json:"userID,omitempty"`
	Slug     string               `json:"slug,omitempty"`
	Review   *modelstudy.Review   `json:"review,omitempty"`
	Messages []modelstudy.Message `json:"messages,omitempty"`
	Post     *PostEntry           `json:"post,omitempty"`
	Comment  *modelstudy.Comment  `json:"comment,omitempty"`
}

// NewPostEntry converts a post to its persisted form.
func NewPostEntry(post modelstudy.Post) PostEntry {
	entry := PostEntry{
		Slug:        post.Slug,
		UserID:      post.UserID,
		Title:       post.Title,
		Content:     post.Content,
		Attachments: make([]AttachmentEntry, 0, len(post.Attachments)),
		CreatedAt:   post.CreatedAt,
	}
	for _, a := range post.Attachments {
		entry.Attachments = append(entry.Attachments, AttachmentEntry{Name: a.Name, Ext: a.Ext, Data: a.Data})
	}
	return entry
}

// ToPost converts a persisted post back, assigning its sequence number.
func (e PostEntry) ToPost(seq int) modelstudy.Post {
	post := modelstudy.Post{
		Seq:         seq,
		Slug:        e.Slug,
		UserID:      e.UserID,
		Title:       e.Title,
		Content:     e.Content,
		Attachments: make([]modelstudy.Attachment, 0, len(e.Attachments)),
		Comments:    []modelstudy.Comment{},
		CreatedAt:   e.CreatedAt,
	}
	for _, a := range e.Attachments {
		post.Attachments = append(post.Attachments, modelstudy.Attachment{Name: a.Name, Ext: a.Ext, Size: len(a.Data), Data: a.Data})
	}
	return post
}
