package collector

import (
	"code.cloudfoundry.org/lager"

	"github.com/nimaam/cpanel-exporter/pkg/cpanel"
)

// Collector fetches the usage domains of one account. Each domain degrades
// independently: apart from the general statistics (which every other
// domain's label set is built from) a failed fetch is logged and comes back
// empty rather than aborting the account.
type Collector struct {
	api    cpanel.API
	logger lager.Logger
}

// New ...
func New(api cpanel.API, logger lager.Logger) *Collector {
	return &Collector{
		api:    api,
		logger: logger,
	}
}

// fetchOptional runs one UAPI call with the shared tolerance rules: any
// execution or envelope failure yields an empty record list.
func (c *Collector) fetchOptional(result *cpanel.Result, fetchErr error, user, domain string) []cpanel.Record {
	logData := lager.Data{"user": user, "domain": domain}

	if fetchErr != nil {
		c.logger.Error("fetch-failed", fetchErr, logData)
		return nil
	}
	if err := result.Err(); err != nil {
		if err == cpanel.ErrFeatureUnavailable {
			c.logger.Info("feature-unavailable", logData)
		} else {
			c.logger.Error("api-error", err, logData)
		}
		return nil
	}

	records, err := result.Records()
	if err != nil {
		c.logger.Error("malformed-data", err, logData)
		return nil
	}
	if len(records) == 0 {
		c.logger.Info("no-data", logData)
	}

	return records
}
