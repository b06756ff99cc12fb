package collector

import (
	"github.com/nimaam/cpanel-exporter/pkg/cpanel"
	"github.com/nimaam/cpanel-exporter/pkg/metrics"
	"github.com/nimaam/cpanel-exporter/pkg/utils"
)

// These two names are numeric series in their own right and never become
// labels.
var labelExcludedStats = []string{"diskusage", "bandwidthusage"}

// BuildLabels derives the label set shared by every line of one account:
// each string-valued StatsBar field in encounter order, then user, then ip.
func BuildLabels(user, ip string, stats []cpanel.Record) *metrics.LabelSet {
	labels := &metrics.LabelSet{}

	for _, record := range stats {
		name, ok := record.StringField("name")
		if !ok || name == "" {
			continue
		}
		if utils.SliceContainsString(labelExcludedStats, name) {
			continue
		}
		value, ok := record.StringField("value")
		if !ok {
			continue
		}
		labels.Add(name, value)
	}

	labels.Add("user", user)
	labels.Add("ip", ip)

	return labels
}
