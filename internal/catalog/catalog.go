// Package catalog fetches words of the day from a read-only word catalog.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yiblet/vocab/internal/store"
)

// Source returns up to n words for the current day.
type Source interface {
	Fetch(ctx context.Context, n int) ([]store.Word, error)
}

// HTTPSource fetches words from a remote JSON endpoint. The endpoint is
// called as GET <BaseURL>?count=n and must return a JSON array of words.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource creates an HTTP source with a bounded client timeout.
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch requests n words from the endpoint.
func (s *HTTPSource) Fetch(ctx context.Context, n int) ([]store.Word, error) {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog url: %w", err)
	}
	q := u.Query()
	q.Set("count", strconv.Itoa(n))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch words: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("catalog returned %s: %s", resp.Status, body)
	}

	var words []store.Word
	if err := json.NewDecoder(resp.Body).Decode(&words); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return limit(words, n), nil
}

// FileSource serves words from a local YAML catalog. Each calendar day gets
// a different window of the file, wrapping around at the end.
type FileSource struct {
	Path string
	Now  func() time.Time
}

type catalogFile struct {
	Words []store.Word `yaml:"words"`
}

// Fetch returns n words for today's window of the catalog file.
func (s *FileSource) Fetch(ctx context.Context, n int) ([]store.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if len(file.Words) == 0 || n <= 0 {
		return []store.Word{}, nil
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return window(file.Words, dayNumber(now()), n), nil
}

// dayNumber counts local calendar days since the Unix epoch.
func dayNumber(t time.Time) int {
	y, m, d := t.Local().Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// window picks n consecutive words starting at day*n, wrapping around.
func window(words []store.Word, day, n int) []store.Word {
	if n > len(words) {
		n = len(words)
	}
	start := (day * n) % len(words)
	out := make([]store.Word, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, words[(start+i)%len(words)])
	}
	return out
}

func limit(words []store.Word, n int) []store.Word {
	if n > 0 && len(words) > n {
		return words[:n]
	}
	if words == nil {
		return []store.Word{}
	}
	return words
}
