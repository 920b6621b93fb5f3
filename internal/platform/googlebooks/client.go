package googlebooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://www.googleapis.com/books/v1/volumes"

// maxBodyBytes caps how much of a volumes response is read.
const maxBodyBytes = 4 << 20

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrMalformedPayload = errors.New("malformed payload")
)

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client (tests inject httptest clients).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func NewClient(userAgent string, rps int, opts ...Option) *Client {
	if rps <= 0 {
		rps = 1
	}
	c := &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		userAgent: userAgent,
		baseURL:   DefaultBaseURL,
		limiter:   rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ImageLinks is the volumeInfo.imageLinks object of a volume.
type ImageLinks struct {
	SmallThumbnail string
	Thumbnail      string
}

// ShelfLink is the link shown on a shelf: thumbnail, or smallThumbnail when
// that is all the catalog has.
func (l ImageLinks) ShelfLink() string {
	if l.Thumbnail != "" {
		return l.Thumbnail
	}
	return l.SmallThumbnail
}

// FetchCover queries the volumes endpoint by ISBN and returns the cover link
// of the first item that has one. It returns "" with a nil error when the
// service knows no cover for the identifier. The link is returned as-is;
// scheme normalization is the caller's job.
func (c *Client) FetchCover(ctx context.Context, isbn string) (string, error) {
	body, err := c.get(ctx, c.volumesURL(isbn))
	if err != nil {
		return "", err
	}
	links, err := ParseImageLinks(body)
	if err != nil {
		return "", err
	}
	for _, l := range links {
		if s := l.ShelfLink(); s != "" {
			return s, nil
		}
	}
	return "", nil
}

// ParseImageLinks extracts volumeInfo.imageLinks for each item of a volumes
// response. A payload without "items" yields no links and no error.
func ParseImageLinks(body []byte) ([]ImageLinks, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrMalformedPayload
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, ErrMalformedPayload
	}

	var out []ImageLinks
	root.Get("items").ForEach(func(_, item gjson.Result) bool {
		links := item.Get("volumeInfo.imageLinks")
		out = append(out, ImageLinks{
			SmallThumbnail: links.Get("smallThumbnail").String(),
			Thumbnail:      links.Get("thumbnail").String(),
		})
		return true
	})
	return out, nil
}

func (c *Client) volumesURL(isbn string) string {
	q := url.Values{}
	q.Set("q", "isbn:"+isbn)
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	return c.baseURL + "?" + q.Encode()
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}
