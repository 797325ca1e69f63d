package main

import (
	"archive/zip"
	"bytes"
	"flag"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/danilovkiri/dk_go_study_helper/internal/api/rest/modeldto"
)

const (
	documents  = "/api/documents"
	chat       = "/api/chat"
	posts      = "/api/posts"
	post       = "/api/posts/{slug}"
	comments   = "/api/posts/{slug}/comments"
	attachment = "/api/posts/{slug}/files/{name}"
	compare    = "/api/images/compare"
	stats      = "/api/internal/stats"
	ping       = "/ping"
)

func randStringBytes(n int) string {
	const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, n)
	for i := range b {
		b[i] = letterBytes[rand.IntN(len(letterBytes))]
	}
	return string(b)
}

// sampleDOCX builds a one-paragraph word document.
func sampleDOCX(text string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>%s</w:t></w:r></w:p></w:body></w:document>`, text)
	if err := zw.Close(); err != nil {
		log.Fatal(err)
	}
	return buf.Bytes()
}

// step runs one endpoint n times and logs the status codes it saw.
func step(name string, n int, call func(i int) (*resty.Response, error)) []*resty.Response {
	log.Info("Performing ", name, " loading")
	codes := map[int]int{}
	responses := make([]*resty.Response, 0, n)
	start := time.Now()
	for i := 0; i < n; i++ {
		res, err := call(i)
		if err != nil {
			log.Fatal(err)
		}
		codes[res.StatusCode()]++
		responses = append(responses, res)
	}
	log.WithFields(log.Fields{"codes": codes, "elapsed": time.Since(start).String()}).Info(name, " done")
	return responses
}

func main() {
	a := flag.String("a", "http://localhost:8080", "Server address")
	n := flag.Int("n", 20, "Iterations per endpoint")
	flag.Parse()
	iterations := *n
	if iterations < 1 {
		iterations = 1
	}

	client := resty.New().SetBaseURL(*a)

	step("ping", iterations, func(int) (*resty.Response, error) {
		return client.R().Get(ping)
	})

	step("document upload", 1, func(int) (*resty.Response, error) {
		return client.R().
			SetFileReader("files", "notes.docx", bytes.NewReader(sampleDOCX("Mitochondria produce energy for the cell"))).
			Post(documents)
	})

	for _, res := range step("document retrieval", iterations, func(int) (*resty.Response, error) {
		return client.R().Get(documents)
	})[:1] {
		log.WithField("keywords", gjson.GetBytes(res.Body(), "keywords").String()).Info("current document")
	}

	step("chat", iterations, func(i int) (*resty.Response, error) {
		return client.R().SetBody(modeldto.RequestQuestion{Question: fmt.Sprintf("Question %d: what is %s?", i, randStringBytes(6))}).Post(chat)
	})

	history := step("chat history", 1, func(int) (*resty.Response, error) {
		return client.R().Get(chat)
	})
	log.WithField("messages", gjson.GetBytes(history[0].Body(), "#").Int()).Info("chat history")

	var slugs []string
	for _, res := range step("post publishing", iterations, func(i int) (*resty.Response, error) {
		return client.R().
			SetMultipartFormData(map[string]string{
				"title":   fmt.Sprintf("Study notes %d %s", i, randStringBytes(5)),
				"content": "Shared summary " + randStringBytes(20),
			}).
			SetFileReader("files", "notes.docx", bytes.NewReader(sampleDOCX(randStringBytes(30)))).
			Post(posts)
	}) {
		if res.StatusCode() == http.StatusCreated {
			slugs = append(slugs, gjson.GetBytes(res.Body(), "slug").String())
		}
	}
	if len(slugs) == 0 {
		log.Fatal("no post was published")
	}

	step("post search", iterations, func(i int) (*resty.Response, error) {
		return client.R().SetQueryParam("q", "notes "+fmt.Sprint(i)).Get(posts)
	})

	step("post comments", iterations, func(i int) (*resty.Response, error) {
		return client.R().
			SetPathParam("slug", slugs[i%len(slugs)]).
			SetBody(modeldto.RequestComment{Content: "Thanks! " + randStringBytes(8)}).
			Post(comments)
	})

	for _, res := range step("post retrieval", iterations, func(i int) (*resty.Response, error) {
		return client.R().SetPathParam("slug", slugs[i%len(slugs)]).Get(post)
	})[:1] {
		log.WithField("comments", gjson.GetBytes(res.Body(), "comments.#.author").String()).Info("post discussion")
	}

	step("attachment download", iterations, func(i int) (*resty.Response, error) {
		return client.R().SetPathParams(map[string]string{"slug": slugs[i%len(slugs)], "name": "notes.docx"}).Get(attachment)
	})

	step("image comparison", 1, func(int) (*resty.Response, error) {
		return client.R().
			SetMultipartFormData(map[string]string{"url": *a + ping}).
			Post(compare)
	})

	step("stats", 1, func(int) (*resty.Response, error) {
		return client.R().Get(stats)
	})
}
