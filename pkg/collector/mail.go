package collector

import (
	"context"
	"math"

	"github.com/nimaam/cpanel-exporter/pkg/cpanel"
	"github.com/nimaam/cpanel-exporter/pkg/metrics"
)

// Mailboxes fetches the per-mailbox disk usage records for an account.
func (c *Collector) Mailboxes(ctx context.Context, user string) []cpanel.Record {
	result, err := c.api.UAPI(ctx, user, "Email", "list_pops_with_disk")
	return c.fetchOptional(result, err, user, "mailboxes")
}

// FormatMailboxes renders one disk-usage line per mailbox. _diskused is
// already in bytes; fractional values truncate.
func FormatMailboxes(records []cpanel.Record, labels *metrics.LabelSet) []metrics.Line {
	lines := []metrics.Line{}

	for _, record := range records {
		email, ok := record.StringField("email")
		if !ok {
			continue
		}
		diskUsed, ok := record.FloatField("_diskused")
		if !ok {
			continue
		}

		lines = append(lines, metrics.Line{
			Name:   "cpanel_email_disk_usage",
			Labels: labels.WithLeading("email", email),
			Value:  math.Trunc(diskUsed),
		})
	}

	return lines
}
