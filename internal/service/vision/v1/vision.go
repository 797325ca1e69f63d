// Package vision describes uploaded and remote images and asks a model to compare them.
package vision

import (
	"bytes"
	"context"
	"fmt"
	"image"
	// registered image decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	serviceErrors "github.com/danilovkiri/dk_go_study_helper/internal/service/errors"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/llm"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/vision"
)

const (
	// ComparePrompt opens the comparison request.
	ComparePrompt = "What do these images have in common?"
	// DefaultMaxDownload bounds a remote image when no limit is configured.
	DefaultMaxDownload int64 = 32 << 20
)

// Check interface implementation explicitly
var (
	_ vision.Comparer = (*Vision)(nil)
)

// Vision struct defines data structure handling and provides support for adding new implementations.
type Vision struct {
	assistant   llm.Assistant
	client      *resty.Client
	maxDownload int64
}

// InitVision initializes a Vision object; a nil client means a default resty client and a
// non-positive maxDownload means DefaultMaxDownload.
func InitVision(assistant llm.Assistant, client *resty.Client, maxDownload int64) (*Vision, error) {
	if assistant == nil {
		return nil, &serviceErrors.ServiceFoundNilDependency{Msg: "nil assistant was passed to vision initializer"}
	}
	if client == nil {
		client = resty.New()
	}
	if maxDownload <= 0 {
		maxDownload = DefaultMaxDownload
	}
	return &Vision{assistant: assistant, client: client, maxDownload: maxDownload}, nil
}

// Compare describes every image and asks the model what they have in common.
func (v *Vision) Compare(ctx context.Context, uploads []modelstudy.File, urls []string) (modelstudy.Comparison, error) {
	if len(uploads)+len(urls) == 0 {
		return modelstudy.Comparison{}, &serviceErrors.NoImagesError{}
	}
	descriptions := make([]string, len(uploads)+len(urls))
	for i, f := range uploads {
		descriptions[i] = describeUpload(i+1, f.Data)
	}
	g, gctx := errgroup.WithContext(ctx)
	for j, u := range urls {
		idx := len(uploads) + j
		g.Go(func() error {
			descriptions[idx] = v.describeURL(gctx, idx+1, u)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return modelstudy.Comparison{}, err
	}

	prompt := ComparePrompt + "\n" + strings.Join(descriptions, "\n")
	answer, err := v.assistant.Complete(ctx, []modelstudy.Message{{Role: modelstudy.RoleUser, Content: prompt}})
	if err != nil {
		return modelstudy.Comparison{}, err
	}
	return modelstudy.Comparison{Answer: answer, Descriptions: descriptions}, nil
}

func describeUpload(n int, data []byte) string {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Sprintf("Image%d load error: %s", n, err)
	}
	return fmt.Sprintf("Image%d size: (%d, %d)", n, cfg.Width, cfg.Height)
}

func (v *Vision) describeURL(ctx context.Context, n int, raw string) string {
	body, err := v.download(ctx, raw)
	if err != nil {
		log.WithField("url", raw).Println("Downloading image:", err)
		return fmt.Sprintf("Image%d download error: %s", n, err)
	}
	desc := fmt.Sprintf("Image%d downloaded: %d bytes", n, len(body))
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(body)); err == nil {
		desc += fmt.Sprintf(", size: (%d, %d)", cfg.Width, cfg.Height)
	}
	return desc
}

// download fetches an http(s) resource reading at most maxDownload bytes of its body.
func (v *Vision) download(ctx context.Context, raw string) ([]byte, error) {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	resp, err := v.client.R().SetContext(ctx).SetDoNotParseResponse(true).Get(u.String())
	if err != nil {
		return nil, err
	}
	rawBody := resp.RawBody()
	defer rawBody.Close()
	if resp.IsError() {
		return nil, fmt.Errorf("unexpected status %s", resp.Status())
	}
	if resp.RawResponse.ContentLength > v.maxDownload {
		return nil, fmt.Errorf("image exceeds %d bytes", v.maxDownload)
	}
	body, err := io.ReadAll(io.LimitReader(rawBody, v.maxDownload+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > v.maxDownload {
		return nil, fmt.Errorf("image exceeds %d bytes", v.maxDownload)
	}
	return body, nil
}
