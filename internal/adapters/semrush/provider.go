// Package semrush implements the ranking provider against the SEMrush
// organic results API. The API speaks a semicolon separated report format
// rather than JSON.
package semrush

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/linkpilot/linkpilot-api/internal/core"
	"github.com/linkpilot/linkpilot-api/internal/domain/linkdom"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
)

// exportColumns selects the report fields we parse, in order:
// domain, url, position, search volume, CPC, keyword difficulty.
const exportColumns = "Dn,Ur,Po,Nq,Cp,Kd"

// displayLimit caps how deep in the results we look for the tracked domain.
// Anything past this depth is reported as not ranking.
const displayLimit = 100

// Config captures the SEMrush client settings.
type Config struct {
	// BaseURL is the API endpoint, without a trailing slash.
	BaseURL string

	// APIKey authenticates every request.
	APIKey string

	// Database is the regional database used when a keyword carries no
	// country of its own (e.g. "us", "uk", "de").
	Database string

	// Timeout bounds a single API request.
	Timeout time.Duration

	// RetryLimit is the number of retries after a failed request.
	RetryLimit int

	// Client overrides the HTTP client, mainly for tests.
	Client *http.Client

	Logger *slog.Logger
}

// Provider fetches organic positions from SEMrush. It implements
// core.RankingProvider.
type Provider struct {
	baseURL    string
	apiKey     string
	database   string
	retryLimit int
	client     *http.Client
	logger     *slog.Logger
}

// NewProvider builds a SEMrush provider. The API key is required.
func NewProvider(cfg Config) (*Provider, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("semrush: API key is required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.semrush.com"
	}

	database := strings.ToLower(strings.TrimSpace(cfg.Database))
	if database == "" {
		database = "us"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	retries := cfg.RetryLimit
	if retries < 0 {
		retries = 0
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Provider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		database:   database,
		retryLimit: retries,
		client:     hc,
		logger:     logger,
	}, nil
}

// FetchRank queries the phrase_organic report for the keyword and scans the
// results for the tracked domain. A keyword whose domain does not appear in
// the report resolves to position 0 rather than an error.
func (p *Provider) FetchRank(ctx context.Context, kw *model.TrackedKeyword) (*core.KeywordRank, error) {
	if kw == nil {
		return nil, errors.New("semrush: keyword is required")
	}

	reqURL := p.reportURL(kw)

	attempts := p.retryLimit + 1
	var lastErr error
	for attempt := range attempts {
		rank, err := p.fetchOnce(ctx, reqURL, kw)
		if err == nil {
			return rank, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt < attempts-1 {
			delay := time.Duration(attempt+1) * 500 * time.Millisecond
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				if !timer.Stop() {
					<-timer.C
				}
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return nil, lastErr
}

func (p *Provider) reportURL(kw *model.TrackedKeyword) string {
	database := strings.ToLower(strings.TrimSpace(kw.Country))
	if database == "" {
		database = p.database
	}

	q := url.Values{}
	q.Set("type", "phrase_organic")
	q.Set("key", p.apiKey)
	q.Set("phrase", kw.Keyword)
	q.Set("database", database)
	q.Set("export_columns", exportColumns)
	q.Set("display_limit", strconv.Itoa(displayLimit))

	return p.baseURL + "/?" + q.Encode()
}

func (p *Provider) fetchOnce(ctx context.Context, reqURL string, kw *model.TrackedKeyword) (*core.KeywordRank, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create semrush request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("semrush request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("semrush %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	return p.parseReport(resp.Body, kw)
}

// parseReport scans the semicolon separated report for the first row whose
// domain matches the tracked domain. The API reports "nothing found" as an
// in-band ERROR line, which for our purposes means the keyword has results
// we do not appear in.
func (p *Provider) parseReport(body io.Reader, kw *model.TrackedKeyword) (*core.KeywordRank, error) {
	target := linkdom.Normalize(kw.Domain)
	if target == "" {
		return nil, fmt.Errorf("semrush: keyword %s has no usable domain", kw.ID)
	}

	scanner := bufio.NewScanner(body)
	first := true
	var header []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if first {
			first = false
			if code, msg, ok := parseAPIError(line); ok {
				if code == errNothingFound {
					return notRanking(kw), nil
				}
				return nil, fmt.Errorf("semrush error %d: %s", code, msg)
			}
			header = strings.Split(line, ";")
			continue
		}

		row, err := parseRow(header, line)
		if err != nil {
			p.logger.Warn("skipping malformed semrush row",
				"keyword_id", kw.ID, "error", err)
			continue
		}

		if linkdom.Normalize(row.domain) == target {
			return row.toRank(kw), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read semrush response: %w", err)
	}

	return notRanking(kw), nil
}

// errNothingFound is the SEMrush code for a keyword with no report data.
const errNothingFound = 50

// parseAPIError recognises in-band "ERROR 50 :: NOTHING FOUND" style lines.
func parseAPIError(line string) (code int, msg string, ok bool) {
	rest, found := strings.CutPrefix(line, "ERROR ")
	if !found {
		return 0, "", false
	}
	codePart, msgPart, _ := strings.Cut(rest, "::")
	code, err := strconv.Atoi(strings.TrimSpace(codePart))
	if err != nil {
		return 0, "", false
	}
	return code, strings.TrimSpace(msgPart), true
}

type reportRow struct {
	domain       string
	rankedURL    string
	position     int
	searchVolume *int
	cpc          *float64
	difficulty   *float64
}

func parseRow(header []string, line string) (*reportRow, error) {
	fields := strings.Split(line, ";")
	if len(fields) != len(header) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(header), len(fields))
	}

	row := &reportRow{}
	for i, name := range header {
		value := strings.TrimSpace(fields[i])
		switch name {
		case "Domain":
			row.domain = value
		case "Url":
			row.rankedURL = value
		case "Position":
			pos, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("parse position %q: %w", value, err)
			}
			row.position = pos
		case "Search Volume":
			if n, err := strconv.Atoi(value); err == nil {
				row.searchVolume = &n
			}
		case "CPC":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				row.cpc = &f
			}
		case "Keyword Difficulty":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				row.difficulty = &f
			}
		}
	}

	if row.domain == "" {
		return nil, errors.New("row has no domain")
	}
	if row.position <= 0 {
		return nil, fmt.Errorf("row has invalid position %d", row.position)
	}
	return row, nil
}

func (r *reportRow) toRank(kw *model.TrackedKeyword) *core.KeywordRank {
	rank := &core.KeywordRank{
		KeywordID:    kw.ID,
		Position:     r.position,
		SearchVolume: r.searchVolume,
		CPC:          r.cpc,
		Difficulty:   r.difficulty,
	}
	if r.rankedURL != "" {
		rank.RankedURL = &r.rankedURL
	}
	return rank
}

func notRanking(kw *model.TrackedKeyword) *core.KeywordRank {
	return &core.KeywordRank{KeywordID: kw.ID, Position: 0}
}
