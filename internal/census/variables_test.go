package census

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const variablesHTML = `<html><body>
<table>
<tr><th>Name</th><th>Label</th></tr>
<tr><td>ESTAB</td><td>Number of establishments</td></tr>
<tr><td>ESTABS_ENTRY</td><td>Establishment entries</td></tr>
<tr><td>FAGE</td><td>Firm age</td></tr>
<tr><td>YEAR</td><td>Year</td></tr>
</table>
</body></html>`

func TestCheckVariables(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/variables.html", r.URL.Path)
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(variablesHTML))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL}, nil)

	require.NoError(t, c.CheckVariables(context.Background(), []string{"ESTAB", "FAGE"}))

	err := c.CheckVariables(context.Background(), []string{"ESTAB", "RETIRED_VAR"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RETIRED_VAR")
	assert.NotContains(t, err.Error(), "ESTAB,", "present variables are not reported missing")
}

func TestCheckVariablesEmptyCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>maintenance</p></body></html>`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL}, nil)
	err := c.CheckVariables(context.Background(), []string{"ESTAB"})
	require.Error(t, err)
}
