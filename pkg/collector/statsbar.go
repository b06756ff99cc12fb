package collector

import (
	"context"
	"strconv"
	"strings"

	"code.cloudfoundry.org/lager"

	"github.com/nimaam/cpanel-exporter/pkg/cpanel"
	"github.com/nimaam/cpanel-exporter/pkg/metrics"
	"github.com/nimaam/cpanel-exporter/pkg/utils"
)

// The fixed StatsBar statistic set queried for every account.
var statsBarDisplay = strings.Join([]string{
	"bandwidthusage",
	"diskusage",
	"addondomains",
	"autoresponders",
	"cachedlistdiskusage",
	"cachedmysqldiskusage",
	"cpanelversion",
	"emailaccounts",
	"emailfilters",
	"emailforwarders",
	"filesusage",
	"ftpaccounts",
	"hostingpackage",
	"hostname",
	"kernelversion",
	"machinetype",
	"operatingsystem",
	"mailinglists",
	"mysqldatabases",
	"mysqldiskusage",
	"mysqlversion",
	"parkeddomains",
	"perlversion",
	"phpversion",
	"shorthostname",
	"sqldatabases",
	"subdomains",
	"cachedpostgresdiskusage",
	"postgresqldatabases",
	"postgresdiskusage",
}, "|")

// Database disk usage figures arrive byte-denominated already; their units
// field must never trigger a conversion.
var databaseDiskUsageStats = []string{
	"mysqldiskusage",
	"cachedmysqldiskusage",
	"postgresdiskusage",
	"cachedpostgresdiskusage",
}

// Statistics exposed with derived free/percent series.
var derivedUsageStats = []string{"diskusage", "filesusage"}

const (
	bytesPerMB = 1024 * 1024
	bytesPerGB = 1024 * 1024 * 1024
)

// GeneralStats fetches the StatsBar statistics for an account. An error or
// an empty result means the account has no usable data this scrape and the
// caller skips it.
func (c *Collector) GeneralStats(ctx context.Context, user string) ([]cpanel.Record, error) {
	result, err := c.api.UAPI(ctx, user, "StatsBar", "get_stats", "display="+statsBarDisplay)
	if err != nil {
		return nil, err
	}
	if err := result.Err(); err != nil {
		return nil, err
	}

	records, err := result.Records()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		c.logger.Info("no-stats-data", lager.Data{"user": user})
	}

	return records, nil
}

// FormatGeneralStats renders the StatsBar records for one account plus the
// trailing cpanel_info presence marker.
func FormatGeneralStats(stats []cpanel.Record, labels *metrics.LabelSet) []metrics.Line {
	lines := []metrics.Line{}

	for _, record := range stats {
		name, ok := record.StringField("name")
		if !ok || name == "" {
			continue
		}

		// a null _count falls back to value, like an absent one
		raw, present := record["_count"]
		if !present || raw == nil {
			raw, present = record["value"]
		}
		if !present {
			continue
		}
		value, ok := cpanel.NormalizeNumeric(raw)
		if !ok {
			continue
		}

		if !utils.SliceContainsString(databaseDiskUsageStats, name) {
			units, _ := record.StringField("units")
			switch units {
			case "GB":
				value *= bytesPerGB
			case "MB":
				value *= bytesPerMB
			}
		}

		if utils.SliceContainsString(derivedUsageStats, name) {
			lines = append(lines, derivedUsageLines(record, name, value, labels)...)
		}

		lines = append(lines, metrics.Line{Name: "cpanel_" + name, Labels: labels, Value: value})
	}

	lines = append(lines, metrics.Line{Name: "cpanel_info", Labels: labels, Value: 1})

	return lines
}

// derivedUsageLines computes the free/percent series for diskusage and
// filesusage. A maximum that is missing, not a string, or "unlimited" (any
// case) suppresses all three lines; so does a failed conversion. The base
// line is never affected.
func derivedUsageLines(record cpanel.Record, name string, value float64, labels *metrics.LabelSet) []metrics.Line {
	percent, ok := record.FloatField("percent")
	if !ok {
		percent = 0
	}
	percentFree := 100 - percent

	max, ok := record.StringField("_max")
	if !ok || max == "" || strings.EqualFold(max, "unlimited") {
		return nil
	}

	maxValue, err := strconv.ParseFloat(max, 64)
	if err != nil {
		return nil
	}
	if name == "diskusage" {
		// diskusage maximum is in MB
		maxValue *= bytesPerMB
	}
	free := maxValue - value

	return []metrics.Line{
		{Name: "cpanel_free_" + name, Labels: labels, Value: free},
		{Name: "cpanel_free_" + name + "_percent", Labels: labels, Value: percentFree},
		{Name: "cpanel_" + name + "_percent", Labels: labels, Value: percent},
	}
}
