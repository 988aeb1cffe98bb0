package server

import (
	"errors"
	"net/http"

	"github.com/MeKo-Tech/textframe/internal/orientation"
	"github.com/MeKo-Tech/textframe/internal/processor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the frame processor over HTTP and WebSocket.
type Server struct {
	processor          *processor.Processor
	corsOrigin         string
	maxFrameBytes      int64
	defaultOrientation orientation.Orientation
	outputOrientation  string
	throttle           *FrameThrottle
}

// Config holds server configuration.
type Config struct {
	Host       string
	Port       int
	CORSOrigin string
	// MaxFrameBytes limits the size of a single frame payload.
	MaxFrameBytes int64
	// DefaultOrientation is used when a request names no sensor orientation.
	DefaultOrientation orientation.Orientation
	// OutputOrientation is sent as the requested output orientation when a
	// request does not carry one. Empty means no request.
	OutputOrientation string
	// MaxFPS and Burst configure the frame throttle. MaxFPS <= 0 disables it.
	MaxFPS float64
	Burst  int
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Engine  string `json:"engine"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// ErrorResponse is returned for rejected requests.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewServer creates a server around an already constructed processor.
func NewServer(config Config, proc *processor.Processor) (*Server, error) {
	if proc == nil {
		return nil, errors.New("server requires a frame processor")
	}
	if config.MaxFrameBytes <= 0 {
		config.MaxFrameBytes = 20 << 20
	}
	return &Server{
		processor:          proc,
		corsOrigin:         config.CORSOrigin,
		maxFrameBytes:      config.MaxFrameBytes,
		defaultOrientation: config.DefaultOrientation,
		outputOrientation:  config.OutputOrientation,
		throttle:           NewFrameThrottle(config.MaxFPS, config.Burst),
	}, nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/frames", s.corsMiddleware(s.framesHandler))
	mux.HandleFunc("/ws/frames", s.corsMiddleware(s.framesWebSocketHandler))
}

// Handler returns a mux with all routes installed.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.SetupRoutes(mux)
	return mux
}
