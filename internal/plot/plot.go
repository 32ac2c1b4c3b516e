// Package plot renders matched objects on an interactive sky chart.
//
// The chart is a plain RA/Dec scatter written as a standalone HTML file,
// one series per catalog, with footprint field boundaries overlaid so a
// quick visual sanity check of the match geometry is possible without
// any plotting environment.
package plot

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
)

// circleSegments is the number of points used to trace one field boundary.
const circleSegments = 72

// Series is one named group of positions to plot.
type Series struct {
	Name string
	Rows domain.PositionBatch
}

// RenderSky writes the sky chart to path. Footprints of type circles get
// their field boundaries traced as extra series; sky-cut footprints have
// no closed boundary and are skipped.
func RenderSky(path, title string, series []Series, footprints []*domain.Footprint) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "roman-xmatch sky plot",
			Width:     "1200px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: 360, Name: "RA (deg)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -90, Max: 90, Name: "Dec (deg)", NameLocation: "middle", NameGap: 30}),
	)

	for _, s := range series {
		data := make([]opts.ScatterData, 0, len(s.Rows))
		for _, row := range s.Rows {
			data = append(data, opts.ScatterData{Value: []interface{}{row.RA, row.Dec}})
		}
		scatter.AddSeries(s.Name, data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))
	}

	for _, fp := range footprints {
		if fp == nil || fp.Type != domain.FootprintCircles {
			continue
		}
		for _, field := range fp.Fields {
			scatter.AddSeries(fmt.Sprintf("%s %s", fp.Name, field.Label),
				circlePoints(field),
				charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 2}))
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	defer f.Close()

	if err := scatter.Render(f); err != nil {
		return fmt.Errorf("render sky plot: %w", err)
	}
	return f.Close()
}

// circlePoints traces a field boundary as a small-circle on the sphere.
// The RA offset is stretched by 1/cos(dec) so the circle keeps its shape
// away from the equator; fields near the poles would need a proper
// projection but none of the defined footprints are there.
func circlePoints(field domain.Field) []opts.ScatterData {
	data := make([]opts.ScatterData, 0, circleSegments)
	cosDec := math.Cos(field.Dec * math.Pi / 180)
	if cosDec < 1e-6 {
		cosDec = 1e-6
	}
	for i := 0; i < circleSegments; i++ {
		angle := 2 * math.Pi * float64(i) / circleSegments
		ra := field.RA + field.RadiusDeg*math.Cos(angle)/cosDec
		dec := field.Dec + field.RadiusDeg*math.Sin(angle)
		ra = math.Mod(math.Mod(ra, 360)+360, 360)
		data = append(data, opts.ScatterData{Value: []interface{}{ra, dec}})
	}
	return data
}

// artifact mirrors the JSON files the result sink writes.
type artifact struct {
	Survey  string `json:"survey"`
	Catalog string `json:"catalog"`
	Objects []struct {
		ObjectID string            `json:"object_id"`
		Catalog  string            `json:"catalog"`
		RA       float64           `json:"ra"`
		Dec      float64           `json:"dec"`
		Extra    map[string]string `json:"extra"`
	} `json:"objects"`
}

// LoadArtifacts reads every match JSON file under dir into one series
// per (survey, catalog) pair, sorted by name for stable legend order.
func LoadArtifacts(dir string) ([]Series, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*_matches.json"))
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	sort.Strings(paths)

	var series []Series
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read artifact %s: %w", filepath.Base(path), err)
		}
		var a artifact
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("parse artifact %s: %w", filepath.Base(path), err)
		}

		rows := make(domain.PositionBatch, 0, len(a.Objects))
		for _, o := range a.Objects {
			rows = append(rows, domain.Row{
				ObjectID: o.ObjectID,
				Catalog:  o.Catalog,
				RA:       o.RA,
				Dec:      o.Dec,
				Extra:    o.Extra,
			})
		}
		name := fmt.Sprintf("%s/%s", strings.ToUpper(a.Survey), a.Catalog)
		series = append(series, Series{Name: name, Rows: rows})
	}
	return series, nil
}
