package cpanel

import (
	"context"
	"encoding/json"
	"strings"

	"code.cloudfoundry.org/lager"
)

const outputFlag = "--output=json"

// featureUnavailableMarker is the substring cPanel puts in the first error
// message when an account's plan lacks the queried capability.
const featureUnavailableMarker = "You do not have the feature"

// API is the surface the collection packages use to reach the WHM API 1
// and cPanel UAPI collaborators.
type API interface {
	WHMAPI1(ctx context.Context, fn string, args ...string) (*WHMResponse, error)
	UAPI(ctx context.Context, user, module, fn string, args ...string) (*Result, error)
}

// Client invokes the WHM API 1 and cPanel UAPI command-line collaborators
// and decodes their JSON envelopes. It must run with enough privilege to
// query arbitrary accounts (root, normally).
type Client struct {
	executor   Executor
	whmapiPath string
	uapiPath   string
	logger     lager.Logger
}

// NewClient ...
func NewClient(executor Executor, whmapiPath, uapiPath string, logger lager.Logger) *Client {
	return &Client{
		executor:   executor,
		whmapiPath: whmapiPath,
		uapiPath:   uapiPath,
		logger:     logger,
	}
}

// WHMResponse is the outer envelope of a WHM API 1 call. Data is left raw
// for the caller to decode into its call-specific shape.
type WHMResponse struct {
	Data json.RawMessage `json:"data"`
}

// WHMAPI1 runs `whmapi1 --output=json <fn> <args...>`.
func (c *Client) WHMAPI1(ctx context.Context, fn string, args ...string) (*WHMResponse, error) {
	argv := append([]string{outputFlag, fn}, args...)

	stdout, err := c.executor.Run(ctx, c.whmapiPath, argv...)
	if err != nil {
		c.logger.Error("whmapi1-command-failed", err, lager.Data{"function": fn})
		return nil, err
	}
	if len(stdout) == 0 {
		c.logger.Error("whmapi1-empty-output", ErrEmptyOutput, lager.Data{"function": fn})
		return nil, ErrEmptyOutput
	}

	var response WHMResponse
	if err := json.Unmarshal(stdout, &response); err != nil {
		mErr := &MalformedResponseError{Command: commandLine(c.whmapiPath, argv), Err: err}
		c.logger.Error("whmapi1-malformed-response", mErr, lager.Data{"function": fn})
		return nil, mErr
	}

	return &response, nil
}

// Result is the inner `result` object of a UAPI response.
type Result struct {
	Status int             `json:"status"`
	Errors []string        `json:"errors"`
	Data   json.RawMessage `json:"data"`
}

type uapiEnvelope struct {
	Result Result `json:"result"`
}

// UAPI runs `uapi --output=json --user=<user> <module> <fn> <args...>`.
func (c *Client) UAPI(ctx context.Context, user, module, fn string, args ...string) (*Result, error) {
	argv := append([]string{outputFlag, "--user=" + user, module, fn}, args...)

	stdout, err := c.executor.Run(ctx, c.uapiPath, argv...)
	if err != nil {
		c.logger.Error("uapi-command-failed", err, lager.Data{"user": user, "module": module, "function": fn})
		return nil, err
	}
	if len(stdout) == 0 {
		c.logger.Error("uapi-empty-output", ErrEmptyOutput, lager.Data{"user": user, "module": module, "function": fn})
		return nil, ErrEmptyOutput
	}

	var envelope uapiEnvelope
	if err := json.Unmarshal(stdout, &envelope); err != nil {
		mErr := &MalformedResponseError{Command: commandLine(c.uapiPath, argv), Err: err}
		c.logger.Error("uapi-malformed-response", mErr, lager.Data{"user": user, "module": module, "function": fn})
		return nil, mErr
	}

	return &envelope.Result, nil
}

// Err classifies a failed result. A zero status with a non-empty error list
// is a domain failure; when the first message carries the marker it means
// the account simply lacks the feature, which is ErrFeatureUnavailable.
func (r *Result) Err() error {
	if r.Status != 0 || len(r.Errors) == 0 {
		return nil
	}
	if strings.Contains(r.Errors[0], featureUnavailableMarker) {
		return ErrFeatureUnavailable
	}
	return &APIError{Messages: r.Errors}
}

// Records decodes the result data as a list of weakly-typed records. A JSON
// null decodes to a nil slice.
func (r *Result) Records() ([]Record, error) {
	if len(r.Data) == 0 {
		return nil, nil
	}
	var records []Record
	if err := json.Unmarshal(r.Data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Record decodes the result data as a single weakly-typed record.
func (r *Result) Record() (Record, error) {
	if len(r.Data) == 0 {
		return nil, nil
	}
	var record Record
	if err := json.Unmarshal(r.Data, &record); err != nil {
		return nil, err
	}
	return record, nil
}
