package engine

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"github.com/j-veylop/truckdash/internal/models"
	"github.com/j-veylop/truckdash/internal/tabular"
)

// Export encodes rows with the dataset's column layout. format overrides the layout's
// format when non-nil.
func Export(ds *models.Dataset, rows []models.TripRecord, format *models.Format) ([]byte, error) {
	var layout models.Layout
	if ds != nil {
		layout = ds.Layout
	}
	if format != nil {
		layout.Format = *format
	}

	var buf bytes.Buffer
	if err := tabular.Encode(&buf, layout, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

const maxNameLen = 120

// ExportFileName names an export after its filter scope, for example
// "trips_driver-A_product-Gravel_2025-08-31.xlsx" or "trips_all_2025-08-31.csv".
func ExportFileName(sel models.FilterSelection, format models.Format, now time.Time) string {
	var parts []string
	for _, f := range models.FilterableFields {
		vals := sel[f]
		if len(vals) == 0 {
			continue
		}
		cleaned := make([]string, 0, len(vals))
		for _, v := range vals {
			if s := strings.Trim(unsafeName.ReplaceAllString(v, "-"), "-"); s != "" {
				cleaned = append(cleaned, s)
			}
		}
		if len(cleaned) > 0 {
			parts = append(parts, f.Slug()+"-"+strings.Join(cleaned, "+"))
		}
	}

	scope := "all"
	if len(parts) > 0 {
		scope = strings.Join(parts, "_")
	}
	if len(scope) > maxNameLen {
		scope = scope[:maxNameLen]
	}

	return "trips_" + scope + "_" + now.Format("2006-01-02") + format.Ext()
}
