// Package reviewer implements document review and document-grounded chat.
package reviewer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/danilovkiri/dk_go_study_helper/internal/metrics"
	serviceErrors "github.com/danilovkiri/dk_go_study_helper/internal/service/errors"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/extractor"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/llm"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/reviewer"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_study_helper/internal/storage/errors"
)

// Review prompts.
const (
	SummaryPrompt     = "Summarize the given document and organize its key points."
	QuestionsPrompt   = "Review the given document and suggest three questions the author should revise or consider."
	CorrectionsPrompt = "Fix spelling and grammar errors in this document and highlight what you changed."
	ChatPrompt        = "You are an assistant answering questions based on the document uploaded by the user. Document: "
)

const (
	defaultCacheSize = 128
	keywordCount     = 10
)

// Check interface implementation explicitly
var (
	_ reviewer.Processor = (*Reviewer)(nil)
)

// Storage is what the reviewer needs from a storage.
type Storage interface {
	storage.ReviewStorage
	storage.MessageStorage
}

// Reviewer struct defines data structure handling and provides support for adding new implementations.
type Reviewer struct {
	storage   Storage
	extractor extractor.Extractor
	assistant llm.Assistant
	cache     *lru.Cache[string, modelstudy.Review]
}

// InitReviewer initializes a Reviewer object and sets its attributes.
func InitReviewer(st Storage, ext extractor.Extractor, assistant llm.Assistant, cacheSize int) (*Reviewer, error) {
	if st == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil storage was passed to reviewer initializer"}
	}
	if ext == nil || assistant == nil {
		return nil, &serviceErrors.ServiceFoundNilDependency{Msg: "nil extractor or assistant was passed to reviewer initializer"}
	}
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[string, modelstudy.Review](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Reviewer{
		storage:   st,
		extractor: ext,
		assistant: assistant,
		cache:     cache,
	}, nil
}

// Review extracts and merges the files, asks for summary, questions and corrections
// and stores the result as the user's workspace.
func (r *Reviewer) Review(ctx context.Context, userID string, files []modelstudy.File) (modelstudy.Review, error) {
	if len(files) == 0 {
		return modelstudy.Review{}, &serviceErrors.NoFilesError{}
	}
	docs := r.extractAll(ctx, files)
	if err := ctx.Err(); err != nil {
		return modelstudy.Review{}, err
	}
	merged := extractor.Merge(docs)
	sum := sha256.Sum256([]byte(merged))
	key := hex.EncodeToString(sum[:])

	review, ok := r.cache.Get(key)
	if ok {
		metrics.ReviewCacheHits.Inc()
		log.WithField("user", userID).Debug("Reviewing documents: cache hit")
	} else {
		var err error
		review, err = r.complete(ctx, merged)
		if err != nil {
			return modelstudy.Review{}, err
		}
		review.DocumentText = merged
		review.Keywords = extractor.Keywords(merged, keywordCount)
		r.cache.Add(key, review)
	}
	review.Files = reports(docs)
	review.CreatedAt = time.Now()
	if err := r.storage.DumpReview(ctx, userID, review); err != nil {
		return modelstudy.Review{}, err
	}
	log.WithFields(log.Fields{"user": userID, "files": len(files)}).Println("Reviewing documents: done")
	return review, nil
}

// extractAll extracts every file concurrently keeping upload order; failures stay per file.
func (r *Reviewer) extractAll(ctx context.Context, files []modelstudy.File) []modelstudy.Document {
	docs := make([]modelstudy.Document, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			doc, err := r.extractor.Extract(gctx, f.Name, f.Data)
			if doc.Name == "" {
				doc.Name = f.Name
			}
			if doc.Format == "" {
				doc.Format = extractor.Format(f.Name)
			}
			doc.Err = err
			docs[i] = doc
			return nil
		})
	}
	_ = g.Wait()
	return docs
}

// complete runs the three review completions concurrently.
func (r *Reviewer) complete(ctx context.Context, text string) (modelstudy.Review, error) {
	var review modelstudy.Review
	g, gctx := errgroup.WithContext(ctx)
	ask := func(prompt string, dst *string) func() error {
		return func() error {
			answer, err := r.assistant.Complete(gctx, []modelstudy.Message{
				{Role: modelstudy.RoleSystem, Content: prompt},
				{Role: modelstudy.RoleUser, Content: text},
			})
			if err != nil {
				return err
			}
			*dst = answer
			return nil
		}
	}
	g.Go(ask(SummaryPrompt, &review.Summary))
	g.Go(ask(QuestionsPrompt, &review.Questions))
	g.Go(ask(CorrectionsPrompt, &review.Corrections))
	if err := g.Wait(); err != nil {
		return modelstudy.Review{}, err
	}
	return review, nil
}

func reports(docs []modelstudy.Document) []modelstudy.FileReport {
	out := make([]modelstudy.FileReport, 0, len(docs))
	for _, doc := range docs {
		report := modelstudy.FileReport{
			Name:       doc.Name,
			Format:     doc.Format,
			Characters: utf8.RuneCountInString(doc.Text),
		}
		if doc.Err != nil {
			report.Error = doc.Err.Error()
		}
		out = append(out, report)
	}
	return out
}

// Ask answers a question about the user's current document and records both turns.
func (r *Reviewer) Ask(ctx context.Context, userID, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", &serviceErrors.EmptyQuestionError{}
	}
	review, err := r.Workspace(ctx, userID)
	if err != nil {
		return "", err
	}
	asked := time.Now()
	answer, err := r.assistant.Complete(ctx, []modelstudy.Message{
		{Role: modelstudy.RoleSystem, Content: ChatPrompt + review.DocumentText},
		{Role: modelstudy.RoleUser, Content: question},
	})
	if err != nil {
		return "", err
	}
	err = r.storage.DumpMessages(ctx, userID,
		modelstudy.Message{Role: modelstudy.RoleUser, Content: question, CreatedAt: asked},
		modelstudy.Message{Role: modelstudy.RoleAssistant, Content: answer, CreatedAt: time.Now()},
	)
	if err != nil {
		return "", err
	}
	return answer, nil
}

// Workspace returns the user's last review.
func (r *Reviewer) Workspace(ctx context.Context, userID string) (modelstudy.Review, error) {
	review, err := r.storage.RetrieveReview(ctx, userID)
	if err != nil {
		var notFound *storageErrors.NotFoundError
		if errors.As(err, &notFound) {
			return modelstudy.Review{}, &serviceErrors.NoDocumentError{UserID: userID}
		}
		return modelstudy.Review{}, err
	}
	return review, nil
}

// History returns the user's chat history in order.
func (r *Reviewer) History(ctx context.Context, userID string) ([]modelstudy.Message, error) {
	messages, err := r.storage.RetrieveMessages(ctx, userID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []modelstudy.Message{}
	}
	return messages, nil
}
