package exporter

import (
	"context"
	"strings"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager"
	uuid "github.com/satori/go.uuid"

	"github.com/nimaam/cpanel-exporter/pkg/accounts"
	"github.com/nimaam/cpanel-exporter/pkg/collector"
	"github.com/nimaam/cpanel-exporter/pkg/metrics"
)

// Exporter drives one full collection pass per scrape: list every account,
// then collect and format all usage domains for each. Accounts fail
// independently; only the account listing is fatal.
type Exporter struct {
	directory accounts.Directory
	identity  accounts.IdentityResolver
	collector *collector.Collector
	clock     clock.Clock
	logger    lager.Logger
}

// New ...
func New(
	directory accounts.Directory,
	identity accounts.IdentityResolver,
	usageCollector *collector.Collector,
	clk clock.Clock,
	logger lager.Logger,
) *Exporter {
	return &Exporter{
		directory: directory,
		identity:  identity,
		collector: usageCollector,
		clock:     clk,
		logger:    logger,
	}
}

// Scrape produces the full exposition body. The returned error is non-nil
// only when the account listing itself failed.
func (e *Exporter) Scrape(ctx context.Context) (string, error) {
	logger := e.logger.Session("scrape", lager.Data{"scrape_id": uuid.NewV4().String()})
	started := e.clock.Now()

	users, err := e.directory.ListUsers(ctx)
	if err != nil {
		logger.Error("list-accounts-failed", err)
		return "", err
	}

	rendered := []string{}
	for _, user := range users {
		for _, line := range e.collectAccount(ctx, logger, user) {
			rendered = append(rendered, line.String())
		}
	}

	logger.Info("scrape-complete", lager.Data{
		"accounts": len(users),
		"lines":    len(rendered),
		"duration": e.clock.Since(started).String(),
	})

	return strings.Join(rendered, "\n") + "\n", nil
}

// collectAccount gathers every domain of one account. The account is
// skipped entirely when its general statistics are unavailable: the shared
// label set cannot be built without them.
func (e *Exporter) collectAccount(ctx context.Context, logger lager.Logger, user string) []metrics.Line {
	stats, err := e.collector.GeneralStats(ctx, user)
	if err != nil {
		logger.Error("account-stats-failed", err, lager.Data{"user": user})
		return nil
	}
	if len(stats) == 0 {
		logger.Info("account-skipped-no-stats", lager.Data{"user": user})
		return nil
	}

	identity := e.identity.Resolve(ctx, user)
	labels := collector.BuildLabels(user, identity.IP, stats)

	lines := collector.FormatGeneralStats(stats, labels)
	lines = append(lines, collector.FormatResourceUsage(e.collector.ResourceUsage(ctx, user), labels)...)
	lines = append(lines, collector.FormatDatabases(e.collector.Databases(ctx, user, collector.MySQL), collector.MySQL, labels)...)
	lines = append(lines, collector.FormatDatabases(e.collector.Databases(ctx, user, collector.Postgres), collector.Postgres, labels)...)
	lines = append(lines, collector.FormatMailboxes(e.collector.Mailboxes(ctx, user), labels)...)
	lines = append(lines, collector.FormatFTPAccounts(e.collector.FTPAccounts(ctx, user), labels)...)

	return lines
}
