package census

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.census.gov/data/timeseries/bds"

// Measures is the fixed variable set pulled at every aggregation level.
var Measures = []string{
	"FIRM",             // number of firms
	"ESTAB",            // number of establishments
	"EMP",              // employment
	"FIRMDEATH_FIRMS",  // firm deaths
	"ESTABS_ENTRY",     // establishment entries (births)
	"ESTABS_EXIT",      // establishment exits (deaths)
	"JOB_CREATION",     // gross job creation
	"JOB_DESTRUCTION",  // gross job destruction
	"NET_JOB_CREATION", // net job creation
}

// Table is a decoded API response: a header row and string cells, exactly as
// the wire has them. JSON nulls come through as "".
type Table struct {
	Columns []string
	Rows    [][]string
}

// Col returns the index of a column, or -1.
func (t Table) Col(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

type Config struct {
	BaseURL string
	APIKey  string // optional; anonymous requests work at a lower quota
	Timeout time.Duration
}

type Client struct {
	cfg Config
	hc  *http.Client
	lim *HostLimiter
}

func New(cfg Config, lim *HostLimiter) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.Timeout},
		lim: lim,
	}
}

// FetchNational pulls the national time series: all measures, all years.
func (c *Client) FetchNational(ctx context.Context) (Table, error) {
	params := url.Values{
		"get":  {strings.Join(Measures, ",")},
		"for":  {"us:*"},
		"YEAR": {"*"},
	}
	t, err := c.fetch(ctx, params)
	if err != nil {
		return Table{}, fmt.Errorf("census get national: %w", err)
	}
	return t, nil
}

// FetchByFirmAge pulls the same series broken down by the FAGE dimension.
func (c *Client) FetchByFirmAge(ctx context.Context) (Table, error) {
	params := url.Values{
		"get":  {strings.Join(Measures, ",") + ",FAGE"},
		"for":  {"us:*"},
		"YEAR": {"*"},
	}
	t, err := c.fetch(ctx, params)
	if err != nil {
		return Table{}, fmt.Errorf("census get by firm age: %w", err)
	}
	return t, nil
}

// FetchByState pulls the same series per state.
func (c *Client) FetchByState(ctx context.Context) (Table, error) {
	params := url.Values{
		"get":  {strings.Join(Measures, ",")},
		"for":  {"state:*"},
		"YEAR": {"*"},
	}
	t, err := c.fetch(ctx, params)
	if err != nil {
		return Table{}, fmt.Errorf("census get by state: %w", err)
	}
	return t, nil
}

func (c *Client) fetch(ctx context.Context, params url.Values) (Table, error) {
	if c.cfg.APIKey != "" {
		params.Set("key", c.cfg.APIKey)
	}
	reqURL := c.cfg.BaseURL + "?" + params.Encode()

	if c.lim != nil {
		if err := c.lim.WaitURL(ctx, reqURL); err != nil {
			return Table{}, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Table{}, err
	}
	req.Header.Set("User-Agent", "bdspipe/1.0 (+local)")
	req.Header.Set("Accept", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return Table{}, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		// the API writes plain-text diagnostics on bad requests
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return Table{}, fmt.Errorf("status %d: %s", res.StatusCode, strings.TrimSpace(string(b)))
	}

	// Wire format: array of arrays of string-or-null, first row is headers.
	var raw [][]*string
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return Table{}, fmt.Errorf("decode response: %w", err)
	}
	if len(raw) == 0 {
		return Table{}, fmt.Errorf("empty response")
	}

	cols := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		if h == nil {
			return Table{}, fmt.Errorf("null column header at index %d", i)
		}
		cols[i] = *h
	}

	rows := make([][]string, 0, len(raw)-1)
	for n, r := range raw[1:] {
		if len(r) != len(cols) {
			return Table{}, fmt.Errorf("row %d has %d cells, want %d", n+1, len(r), len(cols))
		}
		row := make([]string, len(r))
		for i, cell := range r {
			if cell != nil {
				row[i] = *cell
			}
		}
		rows = append(rows, row)
	}

	return Table{Columns: cols, Rows: rows}, nil
}
