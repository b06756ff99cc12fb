package accounts

import (
	"context"
	"encoding/json"

	"code.cloudfoundry.org/lager"

	"github.com/nimaam/cpanel-exporter/pkg/cpanel"
)

// NewWHMDirectory returns a Directory backed by `whmapi1 listaccts`.
func NewWHMDirectory(api cpanel.API, logger lager.Logger) Directory {
	return &whmDirectory{
		api:    api,
		logger: logger,
	}
}

type whmDirectory struct {
	api    cpanel.API
	logger lager.Logger
}

type listAcctsData struct {
	Acct []struct {
		User string `json:"user"`
	} `json:"acct"`
}

func (d *whmDirectory) ListUsers(ctx context.Context) ([]string, error) {
	response, err := d.api.WHMAPI1(ctx, "listaccts")
	if err != nil {
		d.logger.Error("list-accounts-failed", err)
		return nil, err
	}

	if len(response.Data) == 0 {
		d.logger.Info("list-accounts-empty")
		return []string{}, nil
	}

	var data listAcctsData
	if err := json.Unmarshal(response.Data, &data); err != nil {
		mErr := &cpanel.MalformedResponseError{Command: "whmapi1 listaccts", Err: err}
		d.logger.Error("list-accounts-malformed-data", mErr)
		return nil, mErr
	}

	users := []string{}
	for _, acct := range data.Acct {
		if acct.User != "" {
			users = append(users, acct.User)
		}
	}

	if len(users) == 0 {
		d.logger.Info("list-accounts-empty")
	}

	return users, nil
}
