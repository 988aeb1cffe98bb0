package support

import (
	"log/slog"
	"net/http/httptest"

	"github.com/MeKo-Tech/textframe/internal/processor"
	"github.com/MeKo-Tech/textframe/internal/server"
)

// HTTPTestServerWrapper wraps httptest.Server for integration tests.
type HTTPTestServerWrapper struct {
	Server     *httptest.Server
	TestServer *server.Server
}

// URL returns the base URL of the running server.
func (w *HTTPTestServerWrapper) URL() string {
	return w.Server.URL
}

// Close stops the server.
func (w *HTTPTestServerWrapper) Close() {
	w.Server.Close()
}

func (testCtx *TestContext) startTestHTTPServer(cfg server.Config) error {
	logger := slog.New(slog.NewJSONHandler(&testCtx.LastLogs, nil))
	proc, err := processor.New(testCtx.Engine, processor.WithLogger(logger))
	if err != nil {
		return err
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "*"
	}
	srv, err := server.NewServer(cfg, proc)
	if err != nil {
		return err
	}
	testCtx.HTTPServer = &HTTPTestServerWrapper{
		Server:     httptest.NewServer(srv.Handler()),
		TestServer: srv,
	}
	return nil
}
