package words

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/arabic-wordle/assets"
)

// maxListBytes bounds the response body; the full list is well under 1 MiB.
const maxListBytes = 8 << 20

// Loader fetches the prebuilt word list over HTTP.
type Loader struct {
	baseURL    string
	httpClient *http.Client
}

// NewLoader creates a Loader for a server rooted at baseURL.
func NewLoader(baseURL string) *Loader {
	return &Loader{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// URL is the fixed location of the word list.
func (l *Loader) URL() string { return l.baseURL + "/" + assets.DictionaryName }

// Load downloads and decodes the list. It never returns a partial
// dictionary: every failure is reported as an error.
func (l *Loader) Load(ctx context.Context) (*Dictionary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("url", l.URL()).Msg("load dictionary")
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		log.Error().Err(err).Str("url", l.URL()).Msg("load dictionary")
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxListBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	d, err := Parse(body)
	if err != nil {
		log.Error().Err(err).Str("url", l.URL()).Msg("load dictionary")
		return nil, err
	}
	log.Info().Int("words", d.Len()).Msg("loaded dictionary")
	return d, nil
}
