package catalogs

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultVizieRBaseURL is the CDS VizieR mirror queried by default.
	DefaultVizieRBaseURL = "https://vizier.cds.unistra.fr"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second
)

// VizierClient queries VizieR catalogues through the ASU tab-separated
// interface (viz-bin/asu-tsv).
type VizierClient struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewVizierClient creates a VizieR client. An empty baseURL selects the
// default mirror; a nil httpClient gets a client with DefaultTimeout.
func NewVizierClient(baseURL string, httpClient *http.Client) *VizierClient {
	if baseURL == "" {
		baseURL = DefaultVizieRBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &VizierClient{
		baseURL:     baseURL,
		httpClient:  httpClient,
		rateLimiter: NewRateLimiter(ServiceVizieR),
	}
}

// QueryCatalog fetches up to rowLimit rows of an entire catalogue.
// Columns are requested by name; the returned records map column name to
// cell value.
func (c *VizierClient) QueryCatalog(ctx context.Context, catalogID string, columns []string, rowLimit int) ([]map[string]string, error) {
	params := url.Values{}
	params.Set("-source", catalogID)
	params.Set("-out", strings.Join(columns, ","))
	params.Set("-out.max", strconv.Itoa(rowLimit))
	return c.query(ctx, params)
}

// QueryRegion runs a cone search against one catalogue: all rows within
// radiusDeg of (ra, dec), up to rowLimit.
func (c *VizierClient) QueryRegion(ctx context.Context, catalogID string, columns []string, ra, dec, radiusDeg float64, rowLimit int) ([]map[string]string, error) {
	params := url.Values{}
	params.Set("-source", catalogID)
	params.Set("-out", strings.Join(columns, ","))
	params.Set("-out.max", strconv.Itoa(rowLimit))
	params.Set("-c", fmt.Sprintf("%+.6f %+.6f", ra, dec))
	params.Set("-c.rd", fmt.Sprintf("%.3f", radiusDeg))
	return c.query(ctx, params)
}

func (c *VizierClient) query(ctx context.Context, params url.Values) ([]map[string]string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + "/viz-bin/asu-tsv?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vizier query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
		c.rateLimiter.RecordThrottle(retryAfterSeconds(resp))
		return nil, fmt.Errorf("vizier throttled: %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vizier query: %s", resp.Status)
	}

	return parseASUTSV(resp.Body)
}

// parseASUTSV parses VizieR's ASU tab-separated output: '#' comment lines,
// a tab-separated header row, a dashed separator row, then data rows.
// A response with no data rows yields an empty slice.
func parseASUTSV(r io.Reader) ([]map[string]string, error) {
	var (
		header  []string
		records []map[string]string
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if header == nil {
			header = trimAll(fields)
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(fields[0]), "---") {
			// Column underline row.
			continue
		}
		rec := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(fields) {
				rec[name] = strings.TrimSpace(fields[i])
			}
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vizier response: %w", err)
	}
	return records, nil
}

func trimAll(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimSpace(f)
	}
	return out
}

func retryAfterSeconds(resp *http.Response) int {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return secs
}
