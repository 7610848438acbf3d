// Package translate wraps the public text translation services used to localise
// book titles.
package translate

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"bookshelf/internal/platform/upstream"
)

// ErrEmptyTranslation is returned when a provider answers 200 without any text.
var ErrEmptyTranslation = errors.New("empty translation")

// LibreTranslate calls POST /translate on a LibreTranslate instance.
type LibreTranslate struct {
	http    *upstream.Client
	baseURL string
	target  string
}

func NewLibreTranslate(http *upstream.Client, baseURL, target string) *LibreTranslate {
	return &LibreTranslate{http: http, baseURL: strings.TrimRight(baseURL, "/"), target: target}
}

func (t *LibreTranslate) Name() string { return "libretranslate" }

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type libreResponse struct {
	TranslatedText string `json:"translatedText"`
}

func (t *LibreTranslate) Translate(ctx context.Context, text string) (string, error) {
	req := libreRequest{Q: text, Source: "auto", Target: t.target, Format: "text"}

	var res libreResponse
	if err := t.http.PostJSON(ctx, t.baseURL+"/translate", req, &res); err != nil {
		return "", fmt.Errorf("libretranslate: %w", err)
	}
	if strings.TrimSpace(res.TranslatedText) == "" {
		return "", ErrEmptyTranslation
	}
	return res.TranslatedText, nil
}

// MyMemory calls GET /get on the MyMemory translation API.
type MyMemory struct {
	http     *upstream.Client
	baseURL  string
	langpair string
}

func NewMyMemory(http *upstream.Client, baseURL, source, target string) *MyMemory {
	return &MyMemory{
		http:     http,
		baseURL:  strings.TrimRight(baseURL, "/"),
		langpair: source + "|" + target,
	}
}

func (t *MyMemory) Name() string { return "mymemory" }

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
}

func (t *MyMemory) Translate(ctx context.Context, text string) (string, error) {
	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", t.langpair)

	var res myMemoryResponse
	if err := t.http.GetJSON(ctx, t.baseURL+"/get?"+q.Encode(), &res); err != nil {
		return "", fmt.Errorf("mymemory: %w", err)
	}
	if strings.TrimSpace(res.ResponseData.TranslatedText) == "" {
		return "", ErrEmptyTranslation
	}
	return res.ResponseData.TranslatedText, nil
}
