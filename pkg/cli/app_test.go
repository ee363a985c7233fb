package cli

import (
	"net/http"
	"net/http/httptest"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropsim/dropctl/pkg/data"
)

func TestNewApp(t *testing.T) {
	initLogging(false)

	app := newApp()
	require.NotNil(t, app)
	assert.Equal(t, "dropctl", app.Name)
	assert.NotNil(t, app.Before)
	assert.NotNil(t, app.After)

	want := []string{
		"research",
		"suppliers",
		"influencers",
		"content",
		"orders",
		"report",
		"reset",
		"auth",
		"server",
	}
	got := make([]string, 0, len(app.Commands))
	for _, cmd := range app.Commands {
		got = append(got, cmd.Name)
	}
	assert.Equal(t, want, got)
}

func TestMakeRouter(t *testing.T) {
	dbPath := path.Join(t.TempDir(), data.DataFileName)
	require.NoError(t, data.Init(dbPath))

	db, err := data.GetDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mux := makeRouter(db)
	require.NotNil(t, mux)
}

func TestFaviconHandler(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/favicon.ico", nil)
	w := httptest.NewRecorder()

	faviconHandler(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/x-icon", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestEncodeFormats(t *testing.T) {
	v := map[string]string{"status": "ok"}

	outputFormat = formatJSON
	assert.NoError(t, encode(v))

	outputFormat = formatYAML
	assert.NoError(t, encode(v))
	outputFormat = formatJSON
}
