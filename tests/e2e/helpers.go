// Package e2e provides end-to-end tests running the full HTTP stack
// over a real file-backed store.
package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/medsuite/patientd/internal/shell/api"
	"github.com/medsuite/patientd/internal/shell/store"
)

// =============================================================================
// Test Server
// =============================================================================

// StartServer spins up the complete API over a FileStore in a temp
// directory and returns the base URL.
func StartServer(t *testing.T) string {
	t.Helper()

	s := store.NewFileStore(filepath.Join(t.TempDir(), "patients.json"))
	srv := httptest.NewServer(api.NewHandler(s, nil).Routes())
	t.Cleanup(srv.Close)

	return srv.URL
}

// =============================================================================
// HTTP Helpers
// =============================================================================

// DoJSON issues a request with a JSON body and decodes the JSON
// response into out (skipped when out is nil). Returns the status code.
func DoJSON(t *testing.T, method, url string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}
