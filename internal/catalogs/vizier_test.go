package catalogs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const abellTSV = `#
#   VizieR Astronomical Server vizier.cds.unistra.fr
#  -source=VII/110A
#
ACO	_RA.icrs	_DE.icrs	z	Rich	Dclass
---	--------	--------	-----	----	------
2734	2.8375	-28.8558	0.0620	1	5
2871	17.4158	-36.7494	0.1218	1	6
S1136	354.0625	-31.6083		0	4
`

func TestParseASUTSV(t *testing.T) {
	records, err := parseASUTSV(strings.NewReader(abellTSV))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "2734", records[0]["ACO"])
	assert.Equal(t, "2.8375", records[0]["_RA.icrs"])
	assert.Equal(t, "-28.8558", records[0]["_DE.icrs"])
	assert.Equal(t, "0.0620", records[0]["z"])

	// Missing trailing cell parses as empty.
	assert.Equal(t, "", records[2]["z"])
}

func TestParseASUTSVEmptyResponse(t *testing.T) {
	records, err := parseASUTSV(strings.NewReader("#\n# no match\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestQueryCatalog(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/viz-bin/asu-tsv", r.URL.Path)
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(abellTSV))
	}))
	defer srv.Close()

	client := NewVizierClient(srv.URL, srv.Client())
	records, err := client.QueryCatalog(context.Background(), "VII/110A",
		[]string{"ACO", "_RA.icrs", "_DE.icrs"}, 1000)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	assert.Equal(t, []string{"VII/110A"}, gotQuery["-source"])
	assert.Equal(t, []string{"ACO,_RA.icrs,_DE.icrs"}, gotQuery["-out"])
	assert.Equal(t, []string{"1000"}, gotQuery["-out.max"])
}

func TestQueryRegionSendsConeParams(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte("#\n"))
	}))
	defer srv.Close()

	client := NewVizierClient(srv.URL, srv.Client())
	_, err := client.QueryRegion(context.Background(), "II/294",
		[]string{"objID"}, 15.0, -40.0, 8.0, 500)
	require.NoError(t, err)

	assert.Equal(t, []string{"+15.000000 -40.000000"}, gotQuery["-c"])
	assert.Equal(t, []string{"8.000"}, gotQuery["-c.rd"])
}

func TestQueryCatalogServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewVizierClient(srv.URL, srv.Client())
	_, err := client.QueryCatalog(context.Background(), "VII/110A", []string{"ACO"}, 10)
	assert.Error(t, err)
}
