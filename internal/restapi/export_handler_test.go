package restapi

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func fetchSpreadsheet(t *testing.T, url string) (*http.Response, *excelize.File) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	return resp, f
}

func TestExportClinicalTrialsHandler(t *testing.T) {
	server := serveApi(t, createTestApi(t))

	resp, f := fetchSpreadsheet(t, server.URL+"/export/clinicaltrials.xlsx")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "clinicaltrials.xlsx")

	rows, err := f.GetRows("Clinical Trials")
	require.NoError(t, err)
	require.Len(t, rows, 4, "header plus the three studies")

	assert.Equal(t, "NCT ID", rows[0][0])
	assert.Equal(t, "Completion Date", rows[0][10])
	assert.Equal(t, "NCT00000001", rows[1][0])
	assert.Equal(t, "Trial One", rows[1][1])
	assert.Equal(t, "Diabetes, Hypertension", rows[1][5])
	assert.Equal(t, "US", rows[1][8])
}

func TestExportClinicalTrialsHandlerAppliesFilter(t *testing.T) {
	server := serveApi(t, createTestApi(t))

	_, f := fetchSpreadsheet(t, server.URL+"/export/clinicaltrials.xlsx?region=us")

	rows, err := f.GetRows("Clinical Trials")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "NCT00000001", rows[1][0])
}

func TestExportClinicalTrialsHandlerRejectsBadFilter(t *testing.T) {
	server := serveApi(t, createTestApi(t))

	var payload fieldErrorsResponse
	resp := getJSON(t, server, "/export/clinicaltrials.xlsx?region=asia", &payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, payload.FieldErrors, "region")
}
