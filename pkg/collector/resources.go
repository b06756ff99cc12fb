package collector

import (
	"context"
	"math"

	"github.com/nimaam/cpanel-exporter/pkg/cpanel"
	"github.com/nimaam/cpanel-exporter/pkg/metrics"
	"github.com/nimaam/cpanel-exporter/pkg/utils"
)

// The six LVE quota identifiers that are exposed; anything else the API
// reports is dropped.
var resourceQuotaIDs = []string{
	"lvecpu",    // CPU
	"lveep",     // entry processes
	"lvememphy", // physical memory
	"lveiops",   // I/O operations
	"lveio",     // I/O bandwidth
	"lvenproc",  // process count
}

// Identifiers that additionally expose a usage/maximum percentage.
var resourcePercentIDs = []string{"lvecpu", "lvememphy"}

// ResourceUsage fetches the LVE quota usage records for an account. Any
// failure degrades to an empty result.
func (c *Collector) ResourceUsage(ctx context.Context, user string) []cpanel.Record {
	result, err := c.api.UAPI(ctx, user, "ResourceUsage", "get_usages")
	return c.fetchOptional(result, err, user, "resource-usage")
}

// FormatResourceUsage renders the known quota records. The metric name
// drops the three-character "lve" prefix.
func FormatResourceUsage(records []cpanel.Record, labels *metrics.LabelSet) []metrics.Line {
	lines := []metrics.Line{}

	for _, record := range records {
		id, ok := record.StringField("id")
		if !ok || !utils.SliceContainsString(resourceQuotaIDs, id) {
			continue
		}
		usage, ok := record.FloatField("usage")
		if !ok {
			continue
		}

		name := "cpanel_" + id[3:]

		if utils.SliceContainsString(resourcePercentIDs, id) {
			if maximum, ok := record.FloatField("maximum"); ok && maximum != 0 {
				percent := math.Round(usage/maximum*100*100) / 100
				lines = append(lines, metrics.Line{Name: name + "_percent", Labels: labels, Value: percent})
			}
		}

		lines = append(lines, metrics.Line{Name: name, Labels: labels, Value: usage})
	}

	return lines
}
