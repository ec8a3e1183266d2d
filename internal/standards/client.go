package standards

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
	"github.com/pkg/errors"

	"github.com/koshi-quality/assessment/internal/wizard"
)

const (
	requirementsPath    = "/requirements/"
	calculatePointsPath = "/calculate-points/"
	reportPath          = "/report/%d/"
)

type Config struct {
	// BaseURL of the quality-standard API, e.g.
	// https://cim.example.com/api/koshi_quality_standard
	BaseURL string
	Timeout time.Duration
}

// Client talks to the remote quality-standard API. It implements
// wizard.StandardsAPI.
type Client struct {
	c *req.Client
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	c := req.C().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetJsonMarshal(json.Marshal).
		SetJsonUnmarshal(json.Unmarshal).
		SetCommonHeader("Accept", "application/json")
	return &Client{c: c}
}

// FetchRequirements reads the full requirement catalog. The payload is
// shape-checked before anything reaches the wizard data model; a
// malformed envelope is a load failure, never a crash or a silently
// empty list.
func (c *Client) FetchRequirements(ctx context.Context) ([]wizard.Requirement, error) {
	var envelope requirementsEnvelope
	resp, err := c.c.R().
		SetContext(ctx).
		SetRetryCount(2).
		SetRetryBackoffInterval(100*time.Millisecond, 1*time.Second).
		SetRetryCondition(func(resp *req.Response, err error) bool {
			return err != nil || resp.GetStatusCode() >= http.StatusInternalServerError
		}).
		SetSuccessResult(&envelope).
		Get(requirementsPath)
	if err != nil {
		return nil, errors.Wrapf(wizard.ErrLoad, "fetch requirements: %v", err)
	}
	if !resp.IsSuccessState() {
		return nil, errors.Wrapf(wizard.ErrLoad, "fetch requirements: unexpected status %v", resp.GetStatusCode())
	}
	if err := validateEnvelope(&envelope); err != nil {
		return nil, err
	}
	return *envelope.Results, nil
}

// SubmitAssessment posts the final payload to calculate-points. No
// retries here: the call is not known to be idempotent on the remote
// side, and the wizard's own retry loop covers failures.
func (c *Client) SubmitAssessment(ctx context.Context, payload wizard.SubmissionRequest) (wizard.Result, error) {
	var result wizard.Result
	resp, err := c.c.R().
		SetContext(ctx).
		SetBodyJsonMarshal(payload).
		SetSuccessResult(&result).
		Post(calculatePointsPath)
	if err != nil {
		return wizard.Result{}, errors.Wrapf(wizard.ErrSubmission, "calculate points: %v", err)
	}
	if !resp.IsSuccessState() {
		return wizard.Result{}, errors.Wrapf(wizard.ErrSubmission, "calculate points: unexpected status %v", resp.GetStatusCode())
	}
	return result, nil
}

// FetchReport loads a generated report by id for the report page proxy.
func (c *Client) FetchReport(ctx context.Context, id int64) (Report, error) {
	var report Report
	resp, err := c.c.R().
		SetContext(ctx).
		SetSuccessResult(&report).
		Get(fmt.Sprintf(reportPath, id))
	if err != nil {
		return Report{}, errors.Wrapf(err, "fetch report %d", id)
	}
	if resp.GetStatusCode() == http.StatusNotFound {
		return Report{}, errors.Errorf("report %d not found", id)
	}
	if !resp.IsSuccessState() {
		return Report{}, errors.Errorf("fetch report %d: unexpected status %v", id, resp.GetStatusCode())
	}
	return report, nil
}
