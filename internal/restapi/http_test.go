package restapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"

	"cohort.clinicaltrials.dev/internal/app"
	"cohort.clinicaltrials.dev/internal/appconf"
	"cohort.clinicaltrials.dev/internal/trials"
)

// testStudiesPayload covers all three region buckets, a month-only start
// date, and a study with no phases or locations.
const testStudiesPayload = `{
	"studies": [
		{"protocolSection": {
			"identificationModule": {"nctId": "NCT00000001", "briefTitle": "Trial One"},
			"statusModule": {"overallStatus": "RECRUITING", "startDateStruct": {"date": "2021-03-15"}},
			"sponsorCollaboratorsModule": {"leadSponsor": {"name": "Acme Pharma"}},
			"conditionsModule": {"conditions": ["Diabetes", "Hypertension"]},
			"designModule": {"phases": ["PHASE2"], "enrollmentInfo": {"count": 100}},
			"contactsLocationsModule": {"locations": [{"country": "United States"}]}
		}},
		{"protocolSection": {
			"identificationModule": {"nctId": "NCT00000002", "briefTitle": "Trial Two"},
			"statusModule": {"overallStatus": "COMPLETED", "startDateStruct": {"date": "2019-07"}},
			"sponsorCollaboratorsModule": {"leadSponsor": {"name": "Acme Pharma"}},
			"conditionsModule": {"conditions": ["Diabetes"]},
			"designModule": {"phases": ["PHASE3"], "enrollmentInfo": {"count": 250}},
			"contactsLocationsModule": {"locations": [{"country": "France"}]}
		}},
		{"protocolSection": {
			"identificationModule": {"nctId": "NCT00000003", "briefTitle": "Trial Three"},
			"statusModule": {"overallStatus": "RECRUITING"},
			"sponsorCollaboratorsModule": {"leadSponsor": {"name": "Beta Biotech"}},
			"conditionsModule": {"conditions": ["Asthma"]},
			"designModule": {"enrollmentInfo": {"count": 40}}
		}}
	]
}`

const testEudractPayload = `[
	{
		"EudraCT Number": "2020-000001-01",
		"E.1.1 Medical condition(s) being investigated": "Breast Cancer",
		"B.1.1 Name of Sponsor": "Cancer Research Org",
		"F.4.2.2 In the whole clinical trial": "300",
		"Trial protocol": "FR (Ongoing)",
		"Date on which this record was first entered in the EudraCT database": "2020-05-10"
	},
	{
		"EudraCT Number": "2021-000002-02",
		"E.1.1 Medical condition(s) being investigated": "Diabetes",
		"B.1.1 Name of Sponsor": "Acme Pharma",
		"F.4.2.2 In the whole clinical trial": "150",
		"Trial protocol": "IT (Outside EU/EEA)",
		"Date on which this record was first entered in the EudraCT database": "2021-01-15"
	}
]`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestApi builds a RestAPI backed by an in-memory store seeded from a
// stub registry server and a temporary register export.
func createTestApi(t *testing.T) *RestAPI {
	api, _ := createTestApiWithStudiesHandler(t, nil)
	return api
}

// createTestApiWithStudiesHandler is createTestApi with a custom stub
// registry handler. It returns the register export path so tests can swap or
// remove the file. A nil handler serves the fixture payload.
func createTestApiWithStudiesHandler(t *testing.T, handler http.HandlerFunc) (*RestAPI, string) {
	t.Helper()

	if handler == nil {
		handler = func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(testStudiesPayload))
		}
	}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	eudractPath := filepath.Join(dir, "eudract.json")
	require.NoError(t, os.WriteFile(eudractPath, []byte(testEudractPayload), 0644))

	logger := testLogger()
	manager, err := trials.InitTrialManager(trials.Config{
		CTGovURL:      server.URL,
		CTGovPageSize: 500,
		CTGovTimeout:  5 * time.Second,
		EudractPath:   eudractPath,
		DBPath:        ":memory:",
		SnapshotPath:  filepath.Join(dir, "snapshot.json"),
		Env:           appconf.Test,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(manager.Shutdown)

	application := &app.Application{
		Config:       appconf.Config{Env: appconf.Test},
		Logger:       logger,
		TrialManager: manager,
	}
	return NewRestAPI(application), eudractPath
}

// serveApi exposes the full route table on a test server.
func serveApi(t *testing.T, api *RestAPI) *httptest.Server {
	t.Helper()
	router := httprouter.New()
	api.SetRoutes(router)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// getJSON issues a GET and decodes the JSON response into dst.
func getJSON(t *testing.T, server *httptest.Server, path string, dst any) *http.Response {
	t.Helper()
	resp, err := http.Get(server.URL + path)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	return resp
}

// doJSON issues a request with a JSON body and decodes the response into dst
// when dst is non-nil.
func doJSON(t *testing.T, server *httptest.Server, method, path, body string, dst any) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	if dst != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
	return resp
}

// detailResponse is the error payload shape shared by the endpoints.
type detailResponse struct {
	Detail string `json:"detail"`
}

// fieldErrorsResponse is the validation error payload shape.
type fieldErrorsResponse struct {
	FieldErrors map[string][]string `json:"fieldErrors"`
}
