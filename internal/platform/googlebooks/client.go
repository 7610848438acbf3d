// Package googlebooks queries the Google Books volumes API by ISBN.
// No API key is required for basic searches.
package googlebooks

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"bookshelf/internal/platform/upstream"
)

// ErrNotFound is returned when the search yields no volumes.
var ErrNotFound = errors.New("isbn not found in google books")

type Client struct {
	http    *upstream.Client
	baseURL string
}

func NewClient(http *upstream.Client, baseURL string) *Client {
	return &Client{
		http:    http,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Name identifies the source in logs and metrics.
func (c *Client) Name() string {
	return "googlebooks"
}

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type VolumeInfo struct {
	Title         string      `json:"title"`
	Authors       []string    `json:"authors"`
	PublishedDate string      `json:"publishedDate"`
	PageCount     *int        `json:"pageCount"`
	ImageLinks    *ImageLinks `json:"imageLinks"`
}

type ImageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

// SearchByISBN returns the volume info of the first result for isbn.
func (c *Client) SearchByISBN(ctx context.Context, isbn string) (*VolumeInfo, error) {
	u := fmt.Sprintf("%s/volumes?q=%s", c.baseURL, url.QueryEscape("isbn:"+isbn))

	var res volumesResponse
	if err := c.http.GetJSON(ctx, u, &res); err != nil {
		return nil, fmt.Errorf("google books search: %w", err)
	}
	if len(res.Items) == 0 {
		return nil, ErrNotFound
	}
	info := res.Items[0].VolumeInfo
	return &info, nil
}
