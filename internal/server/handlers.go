package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MeKo-Tech/textframe/internal/frame"
	"github.com/MeKo-Tech/textframe/internal/orientation"
	"github.com/MeKo-Tech/textframe/internal/processor"
	"github.com/MeKo-Tech/textframe/internal/version"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:  "healthy",
		Engine:  s.processor.Engine().Name(),
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}
	s.writeJSON(w, http.StatusOK, response)
}

// framesHandler processes one frame. The body is either the raw frame or a
// multipart form with the frame in the "frame" field. Query parameters:
//
//	orientation        sensor orientation (default from config)
//	outputOrientation  requested output orientation
//	format             encoded (default), rgba, bgra or gray
//	width, height, stride  geometry for raw formats
//
// The response is the frame report, or null when the frame was dropped.
func (s *Server) framesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.throttle.Allow() {
		framesDropped.WithLabelValues("http").Inc()
		w.Header().Set("Retry-After", "1")
		s.writeError(w, http.StatusTooManyRequests, "frame_dropped", "frame rate limit exceeded")
		return
	}

	q := r.URL.Query()
	sensor, err := s.sensorOrientation(q.Get("orientation"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_orientation", err.Error())
		return
	}

	data, err := s.readFrameBody(w, r)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || errors.Is(err, frame.ErrTooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "frame_too_large", err.Error())
			return
		}
		s.writeError(w, http.StatusBadRequest, "invalid_frame", err.Error())
		return
	}
	uploadSizeBytes.Observe(float64(len(data)))

	buf, err := bufferFromQuery(data, q.Get("format"), q.Get("width"), q.Get("height"), q.Get("stride"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_format", err.Error())
		return
	}

	f := &frame.Frame{Buffer: buf, Orientation: sensor, Timestamp: time.Now()}
	args := s.frameArgs(q.Get(processor.OutputOrientationKey), q.Has(processor.OutputOrientationKey))

	s.writeJSON(w, http.StatusOK, s.processor.Process(f, args))
}

func (s *Server) readFrameBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxFrameBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			return nil, errors.New("empty request body")
		}
		return data, nil
	}

	if err := r.ParseMultipartForm(s.maxFrameBytes); err != nil {
		return nil, fmt.Errorf("failed to parse form data: %w", err)
	}
	file, _, err := r.FormFile("frame")
	if err != nil {
		return nil, errors.New("no frame file provided")
	}
	defer func() { _ = file.Close() }()

	fr, err := frame.Read(file, orientation.Up, s.maxFrameBytes)
	if err != nil {
		return nil, err
	}
	return fr.Buffer.Data, nil
}

// sensorOrientation parses a sensor orientation, falling back to the
// configured default for an empty value.
func (s *Server) sensorOrientation(name string) (orientation.Orientation, error) {
	if strings.TrimSpace(name) == "" {
		return s.defaultOrientation, nil
	}
	return orientation.Parse(name)
}

// frameArgs builds the processor argument map. An explicit request wins over
// the configured default, even when it is empty.
func (s *Server) frameArgs(requested string, present bool) map[string]any {
	args := make(map[string]any, 1)
	switch {
	case present:
		args[processor.OutputOrientationKey] = requested
	case s.outputOrientation != "":
		args[processor.OutputOrientationKey] = s.outputOrientation
	}
	return args
}

func bufferFromQuery(data []byte, format, width, height, stride string) (*frame.Buffer, error) {
	if format == "" {
		return &frame.Buffer{Data: data, Format: frame.Encoded}, nil
	}
	pf, err := frame.ParsePixelFormat(strings.ToLower(format))
	if err != nil {
		return nil, err
	}
	buf := &frame.Buffer{Data: data, Format: pf}
	if pf == frame.Encoded {
		return buf, nil
	}
	if buf.Width, err = strconv.Atoi(width); err != nil {
		return nil, fmt.Errorf("invalid width %q", width)
	}
	if buf.Height, err = strconv.Atoi(height); err != nil {
		return nil, fmt.Errorf("invalid height %q", height)
	}
	if stride != "" {
		if buf.Stride, err = strconv.Atoi(stride); err != nil {
			return nil, fmt.Errorf("invalid stride %q", stride)
		}
	}
	return buf, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}
