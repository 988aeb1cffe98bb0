package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/MeKo-Tech/textframe/internal/processor"
	"github.com/MeKo-Tech/textframe/internal/testutil"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, cfg Config, eng *testutil.RecordingEngine) *Server {
	t.Helper()
	if eng == nil {
		eng = &testutil.RecordingEngine{Result: testutil.SingleBlockText()}
	}
	proc, err := processor.New(eng, processor.WithLogger(slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))))
	require.NoError(t, err)
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "*"
	}
	s, err := NewServer(cfg, proc)
	require.NoError(t, err)
	return s
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
