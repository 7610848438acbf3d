package openlibrary

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"bookshelf/internal/platform/upstream"
)

// ErrNotFound is returned when the response does not contain the requested ISBN.
var ErrNotFound = errors.New("isbn not found in open library")

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
	return "openlibrary"
}

type Author struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

type Cover struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

// BookDetails matches api/books?jscmd=data
type BookDetails struct {
	Title         string   `json:"title"`
	PublishDate   string   `json:"publish_date"`
	Cover         Cover    `json:"cover"`
	Authors       []Author `json:"authors"`
	NumberOfPages *int     `json:"number_of_pages"`
}

// GetBookByISBN looks up a single ISBN. A response without the ISBN:<isbn> key
// yields ErrNotFound; non-200 responses surface as *upstream.StatusError.
func (c *Client) GetBookByISBN(ctx context.Context, isbn string) (*BookDetails, error) {
	key := "ISBN:" + isbn
	u := fmt.Sprintf("%s/api/books?bibkeys=%s&format=json&jscmd=data",
		c.baseURL, url.QueryEscape(key))

	var res map[string]BookDetails
	if err := c.http.GetJSON(ctx, u, &res); err != nil {
		return nil, fmt.Errorf("open library lookup: %w", err)
	}

	details, ok := res[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &details, nil
}
