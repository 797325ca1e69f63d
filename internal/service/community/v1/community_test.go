package community

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilovkiri/dk_go_study_helper/internal/mocks"
	serviceErrors "github.com/danilovkiri/dk_go_study_helper/internal/service/errors"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
	storageErrors "github.com/danilovkiri/dk_go_study_helper/internal/storage/errors"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage/inmemory"
)

// Tests

func TestInitCommunity(t *testing.T) {
	_, err := InitCommunity(nil)
	assert.Equal(t, "nil storage was passed to community initializer", err.Error())
}

func TestPublish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mocks.NewMockStudyStorage(ctrl)
	s.EXPECT().DumpPost(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, post modelstudy.Post) (modelstudy.Post, error) {
		post.Seq = 1
		return post, nil
	})
	board, err := InitCommunity(s)
	require.NoError(t, err)
	post, err := board.Publish(context.Background(), "someUserID", "Mitosis", "notes", []modelstudy.File{{Name: "Slides.PPTX", Data: []byte("pk")}})
	require.NoError(t, err)
	assert.Equal(t, 1, post.Seq)
	assert.GreaterOrEqual(t, len(post.Slug), MinLength)
	assert.Equal(t, "someUserID", post.UserID)
	require.Len(t, post.Attachments, 1)
	assert.Equal(t, "pptx", post.Attachments[0].Ext)
	assert.Equal(t, 2, post.Attachments[0].Size)
}

func TestPublish_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	board, _ := InitCommunity(mocks.NewMockStudyStorage(ctrl))
	ctx := context.Background()

	var empty *serviceErrors.EmptyFieldError
	_, err := board.Publish(ctx, "u", "  ", "content", nil)
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, "title", empty.Field)
	_, err = board.Publish(ctx, "u", "title", "\n", nil)
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, "content", empty.Field)

	var unsupported *serviceErrors.UnsupportedFormatError
	_, err = board.Publish(ctx, "u", "title", "content", []modelstudy.File{{Name: "virus.exe"}})
	assert.True(t, errors.As(err, &unsupported))
}

func TestSlugsAreUnique(t *testing.T) {
	board, err := InitCommunity(inmemory.InitStorage())
	require.NoError(t, err)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		slug, err := board.generateSlug()
		require.NoError(t, err)
		assert.False(t, seen[slug])
		seen[slug] = true
	}
}

func TestComment(t *testing.T) {
	board, err := InitCommunity(inmemory.InitStorage())
	require.NoError(t, err)
	ctx := context.Background()
	post, err := board.Publish(ctx, "u", "Title", "Body", nil)
	require.NoError(t, err)

	comment, err := board.Comment(ctx, post.Slug, "  great notes ")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^user_[1-9][0-9]{2}$`), comment.Author)
	assert.Equal(t, "great notes", comment.Content)

	_, err = board.Comment(ctx, post.Slug, " ")
	var empty *serviceErrors.EmptyFieldError
	assert.True(t, errors.As(err, &empty))

	_, err = board.Comment(ctx, "missing", "hello")
	var notFound *storageErrors.NotFoundError
	assert.True(t, errors.As(err, &notFound))

	got, err := board.Get(ctx, post.Slug)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, comment.ID, got.Comments[0].ID)
}

func TestListAndAttachment(t *testing.T) {
	board, err := InitCommunity(inmemory.InitStorage())
	require.NoError(t, err)
	ctx := context.Background()
	_, err = board.Publish(ctx, "u", "Photosynthesis", "light reactions", []modelstudy.File{{Name: "leaf.pdf", Data: []byte("%PDF-1.4")}})
	require.NoError(t, err)
	second, err := board.Publish(ctx, "u", "Algebra", "Groups", nil)
	require.NoError(t, err)

	posts, err := board.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	posts, err = board.List(ctx, "LIGHT")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Photosynthesis", posts[0].Title)

	attachment, err := board.Attachment(ctx, posts[0].Slug, "leaf.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), attachment.Data)

	_, err = board.Attachment(ctx, second.Slug, "leaf.pdf")
	var notFound *storageErrors.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}
