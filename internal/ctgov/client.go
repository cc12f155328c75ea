package ctgov

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cohort.clinicaltrials.dev/internal/logging"
)

const (
	DefaultBaseURL  = "https://clinicaltrials.gov/api/v2/studies"
	DefaultPageSize = 500
	DefaultTimeout  = 10 * time.Second
)

// studyFields is the field mask requested from the v2 API. Everything the
// dashboard stores or aggregates over, nothing more.
const studyFields = "protocolSection.identificationModule.nctId," +
	"protocolSection.identificationModule.briefTitle," +
	"protocolSection.statusModule.overallStatus," +
	"protocolSection.statusModule.startDateStruct," +
	"protocolSection.statusModule.completionDateStruct," +
	"protocolSection.sponsorCollaboratorsModule.leadSponsor.name," +
	"protocolSection.conditionsModule.conditions," +
	"protocolSection.designModule.phases," +
	"protocolSection.designModule.enrollmentInfo.count," +
	"protocolSection.contactsLocationsModule.locations"

// Client fetches study pages from the ClinicalTrials.gov v2 API.
type Client struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
}

// NewClient builds a Client, falling back to the public API defaults for
// zero-valued arguments.
func NewClient(baseURL string, pageSize int, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchStudies requests one page of studies. It returns the decoded page
// along with the raw response body, which callers persist verbatim.
func (c *Client) FetchStudies(ctx context.Context) (*StudiesResponse, json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, nil, err
	}

	query := url.Values{}
	query.Set("pageSize", strconv.Itoa(c.pageSize))
	query.Set("fields", studyFields)
	req.URL.RawQuery = query.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "ctgov_client")),
		"http_response_body")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, fmt.Errorf("clinicaltrials.gov returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	var page StudiesResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, nil, fmt.Errorf("decoding studies response: %w", err)
	}

	return &page, body, nil
}
