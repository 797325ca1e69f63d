package proto

import "github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"

type (
	File struct {
		Name string `json:"name"`
		Data []byte `json:"data"`
	}

	ReviewRequest struct {
		Files []File `json:"files"`
	}

	ReviewResponse struct {
		Review modelstudy.Review `json:"review"`
	}

	AskRequest struct {
		Question string `json:"question"`
	}

	AskResponse struct {
		Answer string `json:"answer"`
	}

	HistoryRequest struct{}

	HistoryResponse struct {
		Messages []modelstudy.Message `json:"messages"`
	}

	ListPostsRequest struct {
		Query string `json:"query"`
	}

	ListPostsResponse struct {
		Posts []modelstudy.Post `json:"posts"`
	}

	GetPostRequest struct {
		Slug string `json:"slug"`
	}

	GetPostResponse struct {
		Post modelstudy.Post `json:"post"`
	}

	PublishRequest struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Files   []File `json:"files"`
	}

	PublishResponse struct {
		Post modelstudy.Post `json:"post"`
	}

	CommentRequest struct {
		Slug    string `json:"slug"`
		Content string `json:"content"`
	}

	CommentResponse struct {
		Comment modelstudy.Comment `json:"comment"`
	}
)

// ToFiles converts wire files into service files.
func ToFiles(files []File) []modelstudy.File {
	out := make([]modelstudy.File, 0, len(files))
	for _, f := range files {
		out = append(out, modelstudy.File{Name: f.Name, Data: f.Data})
	}
	return out
}
