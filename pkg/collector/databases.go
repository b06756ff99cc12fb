package collector

import (
	"context"

	"github.com/nimaam/cpanel-exporter/pkg/cpanel"
	"github.com/nimaam/cpanel-exporter/pkg/metrics"
)

// DatabaseEngine selects which database domain to query. The value is also
// the engine token in the emitted metric name.
type DatabaseEngine string

const (
	MySQL    DatabaseEngine = "mysql"
	Postgres DatabaseEngine = "postgres"
)

var engineUAPIModules = map[DatabaseEngine]string{
	MySQL:    "Mysql",
	Postgres: "Postgresql",
}

// Databases fetches the per-database disk usage records for an account. An
// account without the engine's feature yields an empty result, as does any
// failure.
func (c *Collector) Databases(ctx context.Context, user string, engine DatabaseEngine) []cpanel.Record {
	result, err := c.api.UAPI(ctx, user, engineUAPIModules[engine], "list_databases")
	return c.fetchOptional(result, err, user, string(engine)+"-databases")
}

// FormatDatabases renders one disk-usage line per database. Values arrive
// byte-denominated.
func FormatDatabases(records []cpanel.Record, engine DatabaseEngine, labels *metrics.LabelSet) []metrics.Line {
	lines := []metrics.Line{}

	for _, record := range records {
		database, ok := record.StringField("database")
		if !ok {
			continue
		}
		diskUsage, ok := record.FloatField("disk_usage")
		if !ok {
			continue
		}

		lines = append(lines, metrics.Line{
			Name:   "cpanel_" + string(engine) + "_db_disk_usage",
			Labels: labels.WithLeading("db", database),
			Value:  diskUsage,
		})
	}

	return lines
}
