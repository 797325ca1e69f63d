// Package modeldto provides locally used types and their structure for data transfer objects.
package modeldto

type (
	RequestQuestion struct {
		Question string `json:"question" validate:"required"`
	}

	ResponseAnswer struct {
		Answer string `json:"answer"`
	}

	RequestComment struct {
		Content string `json:"content" validate:"required"`
	}

	RequestPost struct {
		Title   string `validate:"required"`
		Content string `validate:"required"`
	}

	ResponseError struct {
		Error string `json:"error"`
	}
)
