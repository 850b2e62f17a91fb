package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/indigo-web/indigo-core/config"
	"github.com/indigo-web/indigo-core/http"
	"github.com/indigo-web/indigo-core/http/method"
	"github.com/indigo-web/indigo-core/http/status"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"index.html":      "<h1>index</h1>",
		"hello.html":      "<h1>hello</h1>",
		"css/style.css":   "body {}",
		"docs/index.html": "<h1>docs</h1>",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	file := config.DefaultFile()
	file.Static.Root = root
	r := newRouter(file, zerolog.Nop())

	get := func(path string) http.Fields {
		return r.OnRequest(http.NewRequest(method.GET, path, nil)).Reveal()
	}

	t.Run("index", func(t *testing.T) {
		fields := get("/")
		require.Equal(t, status.OK, fields.Code)
		require.Equal(t, "<h1>index</h1>", string(fields.Body))
	})

	t.Run("hello", func(t *testing.T) {
		fields := get("/hello")
		require.Equal(t, status.OK, fields.Code)
		require.Equal(t, "<h1>hello</h1>", string(fields.Body))
	})

	t.Run("static", func(t *testing.T) {
		require.Equal(t, "body {}", string(get("/css/style.css").Body))
		require.Equal(t, "<h1>docs</h1>", string(get("/docs/").Body))
		require.Equal(t, status.NotFound, get("/missing.html").Code)
		require.Equal(t, status.Forbidden, get("/../../etc/passwd").Code)
	})

	t.Run("status", func(t *testing.T) {
		fields := get("/status")
		require.Equal(t, status.OK, fields.Code)

		var got serverStatus
		require.NoError(t, jsoniter.Unmarshal(fields.Body, &got))
		require.Equal(t, "ok", got.Status)
		require.Equal(t, version, got.Version)
	})

	t.Run("method mismatch", func(t *testing.T) {
		response := r.OnRequest(http.NewRequest(method.POST, "/hello", nil))
		require.Equal(t, status.NotFound, response.Reveal().Code)
	})
}

func TestNewLogger(t *testing.T) {
	file := config.DefaultFile()
	file.Log.Level = "debug"
	require.Equal(t, zerolog.DebugLevel, newLogger(file).GetLevel())

	file.Log.Level = "nonsense"
	require.Equal(t, zerolog.InfoLevel, newLogger(file).GetLevel())
}
