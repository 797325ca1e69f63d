// Package inpsql provides a PostgreSQL storage for study workspaces and community posts.
package inpsql

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/danilovkiri/dk_go_study_helper/internal/config"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_study_helper/internal/storage/errors"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage/modelstorage"
)

// Check interface implementation explicitly
var (
	_ storage.StudyStorage = (*Storage)(nil)
	_ Pool                 = (*pgxpool.Pool)(nil)
)

const pingTimeout = 2 * time.Second

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Pool is the subset of pgxpool.Pool the storage needs.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Storage struct defines data structure handling and provides support for adding new implementations.
type Storage struct {
	pool Pool
	psql sq.StatementBuilderType
}

// InitStorage migrates the schema, opens a connection pool and closes it once ctx is done.
func InitStorage(ctx context.Context, wg *sync.WaitGroup, cfg *config.Config) (*Storage, error) {
	if err := runMigrations(cfg.DatabaseDSN); err != nil {
		return nil, err
	}
	pool, err := pgxpool.Connect(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	st := NewStorage(pool)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		st.pool.Close()
		log.Println("PSQL DB connection closed successfully")
	}()
	return st, nil
}

// NewStorage wraps an existing pool.
func NewStorage(pool Pool) *Storage {
	return &Storage{
		pool: pool,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// DumpReview upserts the review of a user.
func (s *Storage) DumpReview(ctx context.Context, userID string, review modelstudy.Review) error {
	payload, err := json.Marshal(review)
	if err != nil {
		return &storageErrors.StatementPSQLError{Err: err}
	}
	query, args, err := s.psql.Insert("reviews").
		Columns("user_id", "review", "updated_at").
		Values(userID, payload, review.CreatedAt).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET review = EXCLUDED.review, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return &storageErrors.StatementPSQLError{Err: err}
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return classify(ctx, err, "Dumping review")
	}
	return nil
}

// RetrieveReview returns the latest review of a user.
func (s *Storage) RetrieveReview(ctx context.Context, userID string) (modelstudy.Review, error) {
	var review modelstudy.Review
	query, args, err := s.psql.Select("review").From("reviews").Where(sq.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return review, &storageErrors.StatementPSQLError{Err: err}
	}
	var payload []byte
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return review, &storageErrors.NotFoundError{ID: userID, Err: err}
		}
		return review, classify(ctx, err, "Retrieving review")
	}
	if err := json.Unmarshal(payload, &review); err != nil {
		return review, &storageErrors.ScanningPSQLError{Err: err}
	}
	return review, nil
}

// DumpMessages appends messages to the chat history of a user.
func (s *Storage) DumpMessages(ctx context.Context, userID string, messages ...modelstudy.Message) error {
	if len(messages) == 0 {
		return nil
	}
	builder := s.psql.Insert("messages").Columns("user_id", "role", "content", "created_at")
	for _, m := range messages {
		builder = builder.Values(userID, m.Role, m.Content, m.CreatedAt)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return &storageErrors.StatementPSQLError{Err: err}
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return classify(ctx, err, "Dumping messages")
	}
	return nil
}

// RetrieveMessages returns the chat history of a user in order.
func (s *Storage) RetrieveMessages(ctx context.Context, userID string) ([]modelstudy.Message, error) {
	query, args, err := s.psql.Select("role", "content", "created_at").
		From("messages").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, &storageErrors.StatementPSQLError{Err: err}
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(ctx, err, "Retrieving messages")
	}
	defer rows.Close()
	messages := make([]modelstudy.Message, 0)
	for rows.Next() {
		var m modelstudy.Message
		if err := rows.Scan(&m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, &storageErrors.ScanningPSQLError{Err: err}
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(ctx, err, "Retrieving messages")
	}
	return messages, nil
}

// DumpPost stores a post with its attachments in one transaction.
func (s *Storage) DumpPost(ctx context.Context, post modelstudy.Post) (modelstudy.Post, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return post, classify(ctx, err, "Dumping post")
	}
	stored, err := s.dumpPostTx(ctx, tx, post)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.Println("Dumping post: rollback:", rbErr)
		}
		return post, err
	}
	if err := tx.Commit(ctx); err != nil {
		return post, classify(ctx, err, "Dumping post")
	}
	return stored, nil
}

func (s *Storage) dumpPostTx(ctx context.Context, tx pgx.Tx, post modelstudy.Post) (modelstudy.Post, error) {
	query, args, err := s.psql.Insert("posts").
		Columns("slug", "user_id", "title", "content", "created_at").
		Values(post.Slug, post.UserID, post.Title, post.Content, post.CreatedAt).
		Suffix("RETURNING seq").
		ToSql()
	if err != nil {
		return post, &storageErrors.StatementPSQLError{Err: err}
	}
	var seq int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&seq); err != nil {
		if isPgCode(err, pgerrcode.UniqueViolation) {
			return post, &storageErrors.AlreadyExistsError{ID: post.Slug, Err: err}
		}
		return post, classify(ctx, err, "Dumping post")
	}
	if len(post.Attachments) > 0 {
		builder := s.psql.Insert("attachments").Columns("post_slug", "position", "name", "ext", "data")
		for i, a := range post.Attachments {
			builder = builder.Values(post.Slug, i, a.Name, a.Ext, a.Data)
		}
		query, args, err = builder.ToSql()
		if err != nil {
			return post, &storageErrors.StatementPSQLError{Err: err}
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return post, classify(ctx, err, "Dumping attachments")
		}
	}
	query, args, err = s.psql.Select("count(*)").From("posts").Where(sq.LtOrEq{"seq": seq}).ToSql()
	if err != nil {
		return post, &storageErrors.StatementPSQLError{Err: err}
	}
	var position int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&position); err != nil {
		return post, classify(ctx, err, "Dumping post")
	}
	stored := modelstorage.NewPostEntry(post).ToPost(int(position))
	return stored, nil
}

// postsQuery numbers posts in creation order before any filtering.
func (s *Storage) postsQuery() sq.SelectBuilder {
	numbered := sq.Select("ROW_NUMBER() OVER (ORDER BY seq) AS n", "slug", "user_id", "title", "content", "created_at").From("posts")
	return s.psql.Select("n", "slug", "user_id", "title", "content", "created_at").FromSelect(numbered, "p")
}

// RetrievePost returns a post with its attachments and comments.
func (s *Storage) RetrievePost(ctx context.Context, slug string) (modelstudy.Post, error) {
	var post modelstudy.Post
	query, args, err := s.postsQuery().Where(sq.Eq{"slug": slug}).ToSql()
	if err != nil {
		return post, &storageErrors.StatementPSQLError{Err: err}
	}
	var seq int64
	err = s.pool.QueryRow(ctx, query, args...).Scan(&seq, &post.Slug, &post.UserID, &post.Title, &post.Content, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post, &storageErrors.NotFoundError{ID: slug, Err: err}
		}
		return post, classify(ctx, err, "Retrieving post")
	}
	post.Seq = int(seq)
	if err := s.loadDetails(ctx, &post); err != nil {
		return post, err
	}
	return post, nil
}

// RetrievePosts returns posts in creation order, filtered by a case-insensitive query on title and content.
func (s *Storage) RetrievePosts(ctx context.Context, query string) ([]modelstudy.Post, error) {
	builder := s.postsQuery().OrderBy("n")
	if q := strings.TrimSpace(query); q != "" {
		pattern := "%" + likeEscaper.Replace(q) + "%"
		builder = builder.Where(sq.Or{sq.ILike{"title": pattern}, sq.ILike{"content": pattern}})
	}
	stmt, args, err := builder.ToSql()
	if err != nil {
		return nil, &storageErrors.StatementPSQLError{Err: err}
	}
	rows, err := s.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, classify(ctx, err, "Retrieving posts")
	}
	posts := make([]modelstudy.Post, 0)
	for rows.Next() {
		var post modelstudy.Post
		var seq int64
		if err := rows.Scan(&seq, &post.Slug, &post.UserID, &post.Title, &post.Content, &post.CreatedAt); err != nil {
			rows.Close()
			return nil, &storageErrors.ScanningPSQLError{Err: err}
		}
		post.Seq = int(seq)
		posts = append(posts, post)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, classify(ctx, err, "Retrieving posts")
	}
	for i := range posts {
		if err := s.loadDetails(ctx, &posts[i]); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// loadDetails fills attachments and comments of a post.
func (s *Storage) loadDetails(ctx context.Context, post *modelstudy.Post) error {
	query, args, err := s.psql.Select("name", "ext", "data").
		From("attachments").
		Where(sq.Eq{"post_slug": post.Slug}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return &storageErrors.StatementPSQLError{Err: err}
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return classify(ctx, err, "Retrieving attachments")
	}
	post.Attachments = make([]modelstudy.Attachment, 0)
	for rows.Next() {
		var a modelstudy.Attachment
		if err := rows.Scan(&a.Name, &a.Ext, &a.Data); err != nil {
			rows.Close()
			return &storageErrors.ScanningPSQLError{Err: err}
		}
		a.Size = len(a.Data)
		post.Attachments = append(post.Attachments, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return classify(ctx, err, "Retrieving attachments")
	}

	query, args, err = s.psql.Select("id", "author", "content", "created_at").
		From("comments").
		Where(sq.Eq{"post_slug": post.Slug}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return &storageErrors.StatementPSQLError{Err: err}
	}
	rows, err = s.pool.Query(ctx, query, args...)
	if err != nil {
		return classify(ctx, err, "Retrieving comments")
	}
	defer rows.Close()
	post.Comments = make([]modelstudy.Comment, 0)
	for rows.Next() {
		var c modelstudy.Comment
		if err := rows.Scan(&c.ID, &c.Author, &c.Content, &c.CreatedAt); err != nil {
			return &storageErrors.ScanningPSQLError{Err: err}
		}
		post.Comments = append(post.Comments, c)
	}
	if err := rows.Err(); err != nil {
		return classify(ctx, err, "Retrieving comments")
	}
	return nil
}

// DumpComment appends a comment to an existing post.
func (s *Storage) DumpComment(ctx context.Context, slug string, comment modelstudy.Comment) error {
	query, args, err := s.psql.Insert("comments").
		Columns("id", "post_slug", "author", "content", "created_at").
		Values(comment.ID, slug, comment.Author, comment.Content, comment.CreatedAt).
		ToSql()
	if err != nil {
		return &storageErrors.StatementPSQLError{Err: err}
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		if isPgCode(err, pgerrcode.ForeignKeyViolation) {
			return &storageErrors.NotFoundError{ID: slug, Err: err}
		}
		if isPgCode(err, pgerrcode.UniqueViolation) {
			return &storageErrors.AlreadyExistsError{ID: comment.ID, Err: err}
		}
		return classify(ctx, err, "Dumping comment")
	}
	return nil
}

// GetStats returns storage-wide counters.
func (s *Storage) GetStats(ctx context.Context) (modelstorage.Stats, error) {
	var stats modelstorage.Stats
	query := `SELECT
		(SELECT count(*) FROM reviews),
		(SELECT count(*) FROM messages),
		(SELECT count(*) FROM posts),
		(SELECT count(*) FROM comments)`
	var workspaces, messages, posts, comments int64
	if err := s.pool.QueryRow(ctx, query).Scan(&workspaces, &messages, &posts, &comments); err != nil {
		return stats, classify(ctx, err, "Retrieving stats")
	}
	stats.Workspaces = int(workspaces)
	stats.Messages = int(messages)
	stats.Posts = int(posts)
	stats.Comments = int(comments)
	return stats, nil
}

// PingDB checks the connection pool.
func (s *Storage) PingDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return s.pool.Ping(ctx)
}

// CloseDB closes the connection pool.
func (s *Storage) CloseDB() error {
	s.pool.Close()
	return nil
}

// classify maps driver errors to storage errors.
func classify(ctx context.Context, err error, op string) error {
	log.Println(op+":", err)
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &storageErrors.ContextTimeoutExceededError{Err: err}
	}
	return &storageErrors.ExecutionPSQLError{Err: err}
}

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
