// Package modelstudy provides types shared by the study helper services.
package modelstudy

import "time"

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type (
	// File is an uploaded file as received from a client.
	File struct {
		Name string
		Data []byte
	}

	// Document is the text extracted from one uploaded file.
	Document struct {
		Name   string
		Format string
		Text   string
		Pages  int
		Err    error
	}

	// FileReport summarizes extraction of one file inside a review.
	FileReport struct {
		Name       string `json:"name"`
		Format     string `json:"format"`
		Characters int    `json:"characters"`
		Error      string `json:"error,omitempty"`
	}

	// Review is the outcome of analysing a set of uploaded documents.
	Review struct {
		DocumentText string       `json:"document"`
		Summary      string       `json:"summary"`
		Questions    string       `json:"questions"`
		Corrections  string       `json:"corrections"`
		Keywords     []string     `json:"keywords"`
		Files        []FileReport `json:"files"`
		CreatedAt    time.Time    `json:"createdAt"`
	}

	// Message is one chat turn.
	Message struct {
		Role      string    `json:"role"`
		Content   string    `json:"content"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// Attachment is a file attached to a community post.
	Attachment struct {
		Name string `json:"name"`
		Ext  string `json:"ext"`
		Size int    `json:"size"`
		Data []byte `json:"-"`
	}

	// Comment is an anonymous reply to a community post.
	Comment struct {
		ID        string    `json:"id"`
		Author    string    `json:"author"`
		Content   string    `json:"content"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// Post is a community board entry.
	Post struct {
		Seq         int          `json:"seq"`
		Slug        string       `json:"slug"`
		UserID      string       `json:"-"`
		Title       string       `json:"title"`
		Content     string       `json:"content"`
		Attachments []Attachment `json:"attachments"`
		Comments    []Comment    `json:"comments"`
		CreatedAt   time.Time    `json:"createdAt"`
	}

	// Comparison is the answer to an image comparison request.
	Comparison struct {
		Answer       string   `json:"answer"`
		Descriptions []string `json:"descriptions"`
	}
)
