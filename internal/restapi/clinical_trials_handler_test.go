package restapi

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClinicalTrialsHandlerServesSnapshot(t *testing.T) {
	server := serveApi(t, createTestApi(t))

	var payload struct {
		Data        json.RawMessage `json:"data"`
		LastUpdated string          `json:"last_updated"`
	}
	resp := getJSON(t, server, "/clinicaltrials", &payload)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, testStudiesPayload, string(payload.Data),
		"the upstream payload is served unmodified")

	_, err := time.Parse(time.RFC3339, payload.LastUpdated)
	assert.NoError(t, err, "last_updated should be an RFC 3339 stamp")
}
