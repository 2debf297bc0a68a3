package dictionary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
)

// Fetcher retrieves the raw newline-delimited word list.
type Fetcher interface {
	FetchWordList(ctx context.Context) ([]byte, error)
}

// DefaultMaxWordListSize bounds a downloaded word list.
const DefaultMaxWordListSize = 64 << 20

var ErrWordListTooLarge = errors.New("word list too large")

// HTTPFetcher downloads the word list, retrying transient failures with
// exponential backoff. Client errors (4xx) and oversized bodies are not
// retried.
type HTTPFetcher struct {
	URL      string
	Client   *http.Client
	Attempts uint
	Delay    time.Duration
	// MaxSize is the largest body accepted, in bytes. Zero means
	// DefaultMaxWordListSize.
	MaxSize int64
}

func NewHTTPFetcher(url string, attempts uint) *HTTPFetcher {
	return &HTTPFetcher{
		URL:      url,
		Client:   &http.Client{Timeout: 30 * time.Second},
		Attempts: attempts,
		Delay:    200 * time.Millisecond,
	}
}

func (f *HTTPFetcher) FetchWordList(ctx context.Context) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	attempts := f.Attempts
	if attempts == 0 {
		attempts = 1
	}
	maxSize := f.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxWordListSize
	}
	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				err := fmt.Errorf("fetch %s: %s", f.URL, resp.Status)
				if resp.StatusCode >= 400 && resp.StatusCode < 500 {
					return retry.Unrecoverable(err)
				}
				return err
			}
			body, err = io.ReadAll(io.LimitReader(resp.Body, maxSize+1))
			if err != nil {
				return err
			}
			if int64(len(body)) > maxSize {
				body = nil
				return retry.Unrecoverable(fmt.Errorf("fetch %s: %w (over %d bytes)", f.URL, ErrWordListTooLarge, maxSize))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(f.Delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Uint("n", n).Str("url", f.URL).Msg("word-list-fetch-failed-retrying")
		}),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// FileFetcher reads the word list from the local filesystem.
type FileFetcher struct {
	Path string
}

func (f *FileFetcher) FetchWordList(ctx context.Context) ([]byte, error) {
	return os.ReadFile(f.Path)
}
