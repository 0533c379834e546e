package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const maxDatasetBytes = 4 << 20

// Payload is a raw dataset document.
type Payload struct {
	Body        []byte
	ContentType string
}

// Source retrieves the raw dataset. Implementations return *FetchError or
// *FormatError.
type Source interface {
	Fetch(ctx context.Context) (Payload, error)
	String() string
}

// HTTPSource fetches the dataset with a GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &HTTPSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (s *HTTPSource) String() string {
	return s.URL
}

func (s *HTTPSource) Fetch(ctx context.Context) (Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return Payload{}, &FetchError{Source: s.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	// #nosec G107 -- the dataset URL is operator configuration.
	resp, err := client.Do(req)
	if err != nil {
		return Payload{}, &FetchError{Source: s.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var cause error
		if snippet := strings.TrimSpace(string(b)); snippet != "" {
			cause = errors.New(snippet)
		}
		return Payload{}, &FetchError{Source: s.URL, Status: resp.StatusCode, Err: cause}
	}

	contentType := resp.Header.Get("Content-Type")
	if !isJSONContentType(contentType) {
		return Payload{}, &FormatError{Source: s.URL, Reason: fmt.Sprintf("unexpected content type %q", contentType)}
	}

	body, err := readLimited(resp.Body)
	if err != nil {
		return Payload{}, &FetchError{Source: s.URL, Err: err}
	}
	return Payload{Body: body, ContentType: contentType}, nil
}

// FileSource reads the dataset from a local .json file.
type FileSource struct {
	Path string
}

func (s *FileSource) String() string {
	return s.Path
}

func (s *FileSource) Fetch(ctx context.Context) (Payload, error) {
	if err := ctx.Err(); err != nil {
		return Payload{}, &FetchError{Source: s.Path, Err: err}
	}
	if !strings.EqualFold(filepath.Ext(s.Path), ".json") {
		return Payload{}, &FormatError{Source: s.Path, Reason: "dataset file must have a .json extension"}
	}
	// #nosec G304 -- the dataset path is operator configuration.
	f, err := os.Open(s.Path)
	if err != nil {
		return Payload{}, &FetchError{Source: s.Path, Err: err}
	}
	defer f.Close()

	body, err := readLimited(f)
	if err != nil {
		return Payload{}, &FetchError{Source: s.Path, Err: err}
	}
	return Payload{Body: body, ContentType: "application/json"}, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxDatasetBytes+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxDatasetBytes {
		return nil, fmt.Errorf("dataset exceeded max size (%d bytes)", maxDatasetBytes)
	}
	return body, nil
}

func isJSONContentType(raw string) bool {
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// SourceFor picks an HTTP source for http(s) URLs and a file source
// otherwise.
func SourceFor(location string, timeout time.Duration) Source {
	if IsRemote(location) {
		return NewHTTPSource(location, timeout)
	}
	return &FileSource{Path: strings.TrimPrefix(location, "file://")}
}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
