package catalogs

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
	"github.com/pmarcum/roman-xmatch/internal/core/ports/driven"
	"github.com/pmarcum/roman-xmatch/internal/logger"
)

// DefaultNEDBaseURL is the NASA/IPAC Extragalactic Database endpoint.
const DefaultNEDBaseURL = "https://ned.ipac.caltech.edu"

// MembershipFunc tests positions against a footprint or mask. The NED
// source uses it to pre-filter tiles during wide-area retrieval, which is
// what its SelfFilters capability advertises to the orchestrator.
type MembershipFunc func(batch domain.PositionBatch, fp *domain.Footprint, mask *domain.PixelMask) ([]bool, error)

// NEDClient queries the NED object search endpoint, which answers cone
// searches with a bar-separated ASCII table.
type NEDClient struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewNEDClient creates a NED client. An empty baseURL selects the public
// service; a nil httpClient gets a client with DefaultTimeout.
func NewNEDClient(baseURL string, httpClient *http.Client) *NEDClient {
	if baseURL == "" {
		baseURL = DefaultNEDBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &NEDClient{
		baseURL:     baseURL,
		httpClient:  httpClient,
		rateLimiter: NewRateLimiter(ServiceNED),
	}
}

// QueryRegion runs a cone search of radiusDeg around (ra, dec).
func (c *NEDClient) QueryRegion(ctx context.Context, ra, dec, radiusDeg float64) ([]map[string]string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("search_type", "Near Position Search")
	params.Set("in_csys", "Equatorial")
	params.Set("in_equinox", "J2000.0")
	params.Set("lon", fmt.Sprintf("%.6fd", ra))
	params.Set("lat", fmt.Sprintf("%.6fd", dec))
	params.Set("radius", fmt.Sprintf("%.3f", radiusDeg*60)) // arcmin
	params.Set("of", "ascii_bar")

	reqURL := c.baseURL + "/cgi-bin/objsearch?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ned query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
		c.rateLimiter.RecordThrottle(retryAfterSeconds(resp))
		return nil, fmt.Errorf("ned throttled: %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ned query: %s", resp.Status)
	}

	return parseNEDBar(resp.Body)
}

// parseNEDBar parses NED's ascii_bar format: preamble lines, then a
// bar-separated header containing "Object Name", then bar-separated data
// rows. Rows with a different field count than the header are skipped.
func parseNEDBar(r io.Reader) ([]map[string]string, error) {
	var (
		header  []string
		records []map[string]string
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "|") {
			continue
		}
		fields := trimAll(strings.Split(line, "|"))
		if header == nil {
			if containsField(fields, "Object Name") {
				header = fields
			}
			continue
		}
		if len(fields) != len(header) {
			continue
		}
		rec := make(map[string]string, len(header))
		for i, name := range header {
			rec[name] = fields[i]
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ned response: %w", err)
	}
	return records, nil
}

func containsField(fields []string, want string) bool {
	for _, f := range fields {
		if f == want {
			return true
		}
	}
	return false
}

// nedRACols and nedDecCols are the position column names NED has used
// across format revisions, in preference order.
var (
	nedRACols  = []string{"RA(deg)", "RA"}
	nedDecCols = []string{"DEC(deg)", "DEC", "Dec"}
)

func pickColumn(records []map[string]string, candidates []string) string {
	if len(records) == 0 {
		return candidates[0]
	}
	for _, name := range candidates {
		if _, ok := records[0][name]; ok {
			return name
		}
	}
	return candidates[0]
}

// Ensure NEDSource implements the interface.
var _ driven.CatalogSource = (*NEDSource)(nil)

// NEDSource fetches objects from NED. For circle footprints it cone
// searches each field directly; for sky-cut footprints it tiles the sky
// and pre-filters every tile against the footprint (or mask) to bound
// memory, so its SelfFilters capability is set and the orchestrator
// trusts the result as-is.
type NEDSource struct {
	client     *NEDClient
	membership MembershipFunc
}

// NewNEDSource creates the NED source. membership must not be nil.
func NewNEDSource(client *NEDClient, membership MembershipFunc) *NEDSource {
	return &NEDSource{client: client, membership: membership}
}

// Key returns the catalog key identifier.
func (s *NEDSource) Key() string { return "ned" }

// Label returns the human-readable catalog description.
func (s *NEDSource) Label() string { return "NED — NASA/IPAC Extragalactic Database" }

// Capabilities returns what this source supports.
func (s *NEDSource) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{SelfFilters: true, Tiled: true, RateLimited: true}
}

// Fetch retrieves NED objects already restricted to the footprint/mask.
func (s *NEDSource) Fetch(ctx context.Context, c driven.FetchConstraints) (domain.PositionBatch, error) {
	c.Progress.Report("Querying NED (NASA/IPAC Extragalactic Database)...")

	var batch domain.PositionBatch
	if c.Footprint != nil && c.Footprint.Type == domain.FootprintCircles && c.Mask == nil {
		for _, field := range c.Footprint.Fields {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			c.Progress.Report(fmt.Sprintf("  NED cone search: %s", field.Label))
			records, err := s.client.QueryRegion(ctx, field.RA, field.Dec, field.RadiusDeg)
			if err != nil {
				logger.Warn("NED query for %s failed: %v", field.Label, err)
				c.Progress.Report(fmt.Sprintf("  WARNING: NED query for %s failed: %v", field.Label, err))
				continue
			}
			batch = append(batch, s.toRows(records)...)
		}
	} else {
		tiled, err := s.fetchTiled(ctx, c)
		if err != nil {
			return nil, err
		}
		batch = tiled
	}

	batch = dedupeByID(batch)
	if len(batch) > c.RowLimit && c.RowLimit > 0 {
		batch = batch[:c.RowLimit]
	}
	return batch, nil
}

// fetchTiled tiles the sky, filtering each tile's rows through the
// membership test before accumulating them.
func (s *NEDSource) fetchTiled(ctx context.Context, c driven.FetchConstraints) (domain.PositionBatch, error) {
	tiles := skyTiles()
	c.Progress.Report(fmt.Sprintf("  Tiling sky with %d NED tiles (15° x 10° grid)...", len(tiles)))

	var batch domain.PositionBatch
	for i, tile := range tiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, err := s.client.QueryRegion(ctx, tile.RA, tile.Dec, tile.RadiusDeg)
		if err != nil {
			logger.Debug("NED tile (%.0f, %.0f) failed: %v", tile.RA, tile.Dec, err)
			continue
		}

		rows := s.toRows(records)
		if len(rows) > 0 && (c.Footprint != nil || c.Mask != nil) {
			inside, err := s.membership(rows, c.Footprint, c.Mask)
			if err != nil {
				return nil, fmt.Errorf("pre-filter tile: %w", err)
			}
			rows = rows.Select(inside)
		}
		batch = append(batch, rows...)

		if (i+1)%tileLogEvery == 0 {
			c.Progress.Report(fmt.Sprintf("  ... %d/%d NED tiles queried", i+1, len(tiles)))
		}
	}
	return batch, nil
}

func (s *NEDSource) toRows(records []map[string]string) domain.PositionBatch {
	raCol := pickColumn(records, nedRACols)
	decCol := pickColumn(records, nedDecCols)
	return standardise(records, raCol, decCol, "NED", "Object Name")
}
