package history

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectGetter is the slice of the S3 API used to read exports.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Opener opens the export at a location: a local path, an http(s) URL or an
// s3://bucket/key URI.
type Opener struct {
	httpClient *http.Client
	awsRegion  string

	mu sync.Mutex
	s3 ObjectGetter
}

type OpenerOption func(*Opener)

func WithHTTPClient(hc *http.Client) OpenerOption {
	return func(o *Opener) { o.httpClient = hc }
}

// WithS3 injects the S3 client. Without it one is built lazily from the
// default AWS config chain on first s3:// access.
func WithS3(g ObjectGetter) OpenerOption {
	return func(o *Opener) { o.s3 = g }
}

func WithAWSRegion(region string) OpenerOption {
	return func(o *Opener) { o.awsRegion = region }
}

func NewOpener(opts ...OpenerOption) *Opener {
	o := &Opener{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Opener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(location, "s3://"):
		return o.openS3(ctx, location)
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return o.openHTTP(ctx, location)
	default:
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", location, err)
		}
		return f, nil
	}
}

func (o *Opener) openHTTP(ctx context.Context, location string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status code: %d", location, resp.StatusCode)
	}
	return resp.Body, nil
}

func (o *Opener) openS3(ctx context.Context, location string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3URI(location)
	if err != nil {
		return nil, err
	}
	client, err := o.s3Client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", location, err)
	}
	return out.Body, nil
}

func (o *Opener) s3Client(ctx context.Context) (ObjectGetter, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.s3 == nil {
		var loadOpts []func(*awsconfig.LoadOptions) error
		if o.awsRegion != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(o.awsRegion))
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		o.s3 = s3.NewFromConfig(cfg)
	}
	return o.s3, nil
}

// ParseS3URI splits s3://bucket/key.
func ParseS3URI(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("parse %s: %w", location, err)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 location %q", location)
	}
	return bucket, key, nil
}
