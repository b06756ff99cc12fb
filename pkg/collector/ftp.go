package collector

import (
	"context"
	"math"

	"github.com/nimaam/cpanel-exporter/pkg/cpanel"
	"github.com/nimaam/cpanel-exporter/pkg/metrics"
)

// FTPAccounts fetches the per-FTP-account disk usage records for an
// account.
func (c *Collector) FTPAccounts(ctx context.Context, user string) []cpanel.Record {
	result, err := c.api.UAPI(ctx, user, "Ftp", "list_ftp_with_disk")
	return c.fetchOptional(result, err, user, "ftp-accounts")
}

// FormatFTPAccounts renders one disk-usage line per FTP account. _diskused
// is in MB and converts to rounded bytes.
func FormatFTPAccounts(records []cpanel.Record, labels *metrics.LabelSet) []metrics.Line {
	lines := []metrics.Line{}

	for _, record := range records {
		login, ok := record.StringField("login")
		if !ok {
			continue
		}
		diskUsedMB, ok := record.FloatField("_diskused")
		if !ok {
			continue
		}

		lines = append(lines, metrics.Line{
			Name:   "cpanel_ftp_account_disk_usage",
			Labels: labels.WithLeading("ftp_account", login),
			Value:  math.Round(diskUsedMB * bytesPerMB),
		})
	}

	return lines
}
