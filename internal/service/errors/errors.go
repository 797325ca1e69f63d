// Package errors provides custom errors for the study helper services.
package errors

import "fmt"

type (
	ServiceInitHashError struct {
		Msg string
	}
	ServiceEncodingHashError struct {
		Msg string
	}
	ServiceFoundNilStorage struct {
		Msg string
	}
	ServiceFoundNilDependency struct {
		Msg string
	}
	NoFilesError struct {
	}
	NoImagesError struct {
	}
	NoDocumentError struct {
		UserID string
	}
	EmptyQuestionError struct {
	}
	EmptyFieldError struct {
		Field string
	}
	UnsupportedFormatError struct {
		Name   string
		Format string
	}
	ParseError struct {
		Format string
		Err    error
	}
	ProviderQuotaError struct {
		Provider string
		Err      error
	}
	NoProviderError struct {
		Err error
	}
)

func (e *ServiceInitHashError) Error() string {
	return e.Msg
}

func (e *ServiceEncodingHashError) Error() string {
	return e.Msg
}

func (e *ServiceFoundNilStorage) Error() string {
	return e.Msg
}

func (e *ServiceFoundNilDependency) Error() string {
	return e.Msg
}

func (e *NoFilesError) Error() string {
	return "no files were uploaded"
}

func (e *NoImagesError) Error() string {
	return "no images or image URLs were provided"
}

func (e *NoDocumentError) Error() string {
	return "upload a document first"
}

func (e *EmptyQuestionError) Error() string {
	return "question is empty"
}

func (e *EmptyFieldError) Error() string {
	return fmt.Sprintf("%s is empty", e.Field)
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported file format %q, only pdf, pptx and docx are supported", e.Name, e.Format)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not read %s file: %s", e.Format, e.Err.Error())
}

func (e *ProviderQuotaError) Error() string {
	return fmt.Sprintf("%s: quota exceeded: %s", e.Provider, e.Err.Error())
}

func (e *NoProviderError) Error() string {
	if e.Err == nil {
		return "no language model provider is configured"
	}
	return fmt.Sprintf("all language model providers failed: %s", e.Err.Error())
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ProviderQuotaError) Unwrap() error {
	return e.Err
}

func (e *NoProviderError) Unwrap() error {
	return e.Err
}
