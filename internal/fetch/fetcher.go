// Package fetch downloads puzzle inputs from Advent of Code with session
// authentication, local caching, and bounded retries.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/aoc2020/internal/config"
	"git.home.luguber.info/inful/aoc2020/internal/errors"
	"git.home.luguber.info/inful/aoc2020/internal/logfields"
	"git.home.luguber.info/inful/aoc2020/internal/metrics"
	"git.home.luguber.info/inful/aoc2020/internal/retry"
)

// userAgent identifies this tool per the AoC automation guidelines.
const userAgent = "aocbuild (git.home.luguber.info/inful/aoc2020)"

// InputRelPath is where a unit's puzzle input lands, relative to the unit directory.
const InputRelPath = "input/puzzle.txt"

// TitleRelPath is where a unit's cached puzzle title lands, relative to the
// unit directory. The index command falls back to it for units without notes.
const TitleRelPath = "input/title.txt"

// Result describes one fetch outcome.
type Result struct {
	Day    int    `json:"day"`
	Path   string `json:"path"`
	Cached bool   `json:"cached"`
	Bytes  int    `json:"bytes"`
}

// Fetcher downloads and caches puzzle inputs.
type Fetcher struct {
	cfg      config.FetchConfig
	policy   retry.Policy
	client   *http.Client
	recorder metrics.Recorder
}

// NewFetcher creates a fetcher from the fetch configuration.
func NewFetcher(cfg config.FetchConfig) *Fetcher {
	// Respects HTTP_PROXY, HTTPS_PROXY, and NO_PROXY environment variables.
	transport := http.DefaultTransport.(*http.Transport).Clone()

	return &Fetcher{
		cfg:    cfg,
		policy: retry.FromFetchConfig(cfg),
		client: &http.Client{
			Timeout:   cfg.TimeoutDuration(),
			Transport: transport,
		},
		recorder: metrics.NoopRecorder{},
	}
}

// SetRecorder injects a metrics recorder (optional).
func (f *Fetcher) SetRecorder(r metrics.Recorder) {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	f.recorder = r
}

// FetchInput downloads the input for one day into <root>/dayNN/input/puzzle.txt.
// An existing non-empty file short-circuits the download unless force is set.
func (f *Fetcher) FetchInput(ctx context.Context, root string, day int, force bool) (*Result, error) {
	unitName := fmt.Sprintf("day%02d", day)
	inputPath := filepath.Join(root, unitName, filepath.FromSlash(InputRelPath))

	if !force {
		if info, err := os.Stat(inputPath); err == nil && info.Size() > 0 {
			return &Result{Day: day, Path: inputPath, Cached: true, Bytes: int(info.Size())}, nil
		}
	}

	token := os.Getenv(f.cfg.SessionEnv)
	if token == "" {
		return nil, errors.ConfigRequired(f.cfg.SessionEnv)
	}

	url := fmt.Sprintf("%s/%d/day/%d/input", f.cfg.BaseURL, f.cfg.Year, day)

	var data []byte
	var lastErr error
	for attempt := 0; ; attempt++ {
		var err error
		data, err = f.download(ctx, url, token)
		if err == nil {
			break
		}
		lastErr = err
		if !errors.IsRetryable(err) || attempt >= f.policy.MaxRetries {
			f.recorder.IncFetchResult(false)
			return nil, lastErr
		}

		delay := f.policy.Delay(attempt + 1)
		slog.Warn("Transient fetch error, retrying",
			logfields.URL(url),
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			logfields.Error(err))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			f.recorder.IncFetchResult(false)
			return nil, ctx.Err()
		}
	}

	if err := os.MkdirAll(filepath.Dir(inputPath), 0o750); err != nil {
		f.recorder.IncFetchResult(false)
		return nil, errors.Wrap(err, errors.CategoryIO, errors.SeverityError, "cannot create input directory").
			WithContext("path", filepath.Dir(inputPath))
	}
	// Inputs are personal per the AoC rules; keep them out of group read.
	if err := os.WriteFile(inputPath, data, 0o600); err != nil {
		f.recorder.IncFetchResult(false)
		return nil, errors.Wrap(err, errors.CategoryIO, errors.SeverityError, "cannot write input file").
			WithContext("path", inputPath)
	}

	f.recorder.IncFetchResult(true)
	slog.Info("Fetched puzzle input", logfields.Day(day), logfields.Path(inputPath), logfields.Count(len(data)))
	return &Result{Day: day, Path: inputPath, Bytes: len(data)}, nil
}

// FetchTitle retrieves the published puzzle title for a day, e.g.
// "Handy Haversacks". Day pages are public, so no session is needed.
func (f *Fetcher) FetchTitle(ctx context.Context, day int) (string, error) {
	url := fmt.Sprintf("%s/%d/day/%d", f.cfg.BaseURL, f.cfg.Year, day)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, errors.SeverityError, "failed to create request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", errors.FetchError(url, err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore close errors after reading
	}()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", classifyStatus(url, resp.StatusCode)
	}

	return ParseDayTitle(resp.Body)
}

// CacheTitle fetches the day title and stores it at
// <root>/dayNN/input/title.txt. An existing non-empty cache file
// short-circuits the request.
func (f *Fetcher) CacheTitle(ctx context.Context, root string, day int) (string, error) {
	titlePath := titlePath(root, day)
	if title, ok := readTitle(titlePath); ok {
		return title, nil
	}

	title, err := f.FetchTitle(ctx, day)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(titlePath), 0o750); err != nil {
		return "", errors.Wrap(err, errors.CategoryIO, errors.SeverityError, "cannot create input directory").
			WithContext("path", filepath.Dir(titlePath))
	}
	if err := os.WriteFile(titlePath, []byte(title+"\n"), 0o600); err != nil {
		return "", errors.Wrap(err, errors.CategoryIO, errors.SeverityError, "cannot write title cache").
			WithContext("path", titlePath)
	}

	slog.Debug("Cached puzzle title", logfields.Day(day), logfields.Path(titlePath))
	return title, nil
}

// CachedTitle reads a previously cached day title without touching the
// network. The second return reports whether a cached title exists.
func CachedTitle(root string, day int) (string, bool) {
	return readTitle(titlePath(root, day))
}

func titlePath(root string, day int) string {
	unitName := fmt.Sprintf("day%02d", day)
	return filepath.Join(root, unitName, filepath.FromSlash(TitleRelPath))
}

func readTitle(path string) (string, bool) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is derived from the configured root
	if err != nil {
		return "", false
	}
	title := strings.TrimSpace(string(data))
	return title, title != ""
}

func (f *Fetcher) download(ctx context.Context, url, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, errors.SeverityError, "failed to create request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.FetchError(url, err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore close errors after reading
	}()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, classifyStatus(url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.FetchError(url, err)
	}
	return data, nil
}

// classifyStatus maps HTTP failures onto the error taxonomy. Only server
// side conditions are worth retrying; a rejected session never heals on
// its own.
func classifyStatus(url string, status int) error {
	switch status {
	case http.StatusNotFound:
		return errors.New(errors.CategoryNotFound, errors.SeverityError, "puzzle input not available").
			WithContext("url", url).
			WithContext("status", status)
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return errors.New(errors.CategoryConfig, errors.SeverityFatal, "session token rejected").
			WithContext("url", url).
			WithContext("status", status)
	default:
		return errors.FetchError(url, fmt.Errorf("unexpected status %d", status))
	}
}
