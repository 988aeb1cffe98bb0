package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MeKo-Tech/textframe/internal/orientation"
	"github.com/MeKo-Tech/textframe/internal/processor"
	"github.com/MeKo-Tech/textframe/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_RequiresProcessor(t *testing.T) {
	_, err := NewServer(Config{}, nil)
	require.Error(t, err)
}

func TestServer_HealthHandler(t *testing.T) {
	s := newTestServer(t, Config{}, nil)

	w := httptest.NewRecorder()
	s.healthHandler(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, "recording", response.Engine)
	assert.NotEmpty(t, response.Time)

	w = httptest.NewRecorder()
	s.healthHandler(w, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestServer_FramesHandler_RawBody(t *testing.T) {
	eng := &testutil.RecordingEngine{Result: testutil.SingleBlockText()}
	s := newTestServer(t, Config{}, eng)

	body := testutil.EncodePNG(t, testutil.MarkerImage(6, 4))
	req := httptest.NewRequest(http.MethodPost, "/frames?orientation=up&outputOrientation=landscape-right", bytes.NewReader(body))
	req.Header.Set("Content-Type", "image/png")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	out := decodeBody(t, w)
	result := out["result"].(map[string]any)
	assert.Equal(t, "Hello world", result["text"])

	// landscape-right from up resolves to left: the engine sees a portrait image.
	images := eng.Images()
	require.Len(t, images, 1)
	assert.Equal(t, 4, images[0].Bounds().Dx())
}

func TestServer_FramesHandler_Multipart(t *testing.T) {
	eng := &testutil.RecordingEngine{Result: testutil.SingleBlockText()}
	s := newTestServer(t, Config{}, eng)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("frame", "frame.png")
	require.NoError(t, err)
	_, err = part.Write(testutil.EncodePNG(t, testutil.MarkerImage(3, 3)))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/frames?orientation=left", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.framesHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeBody(t, w), "result")
	assert.Equal(t, 1, eng.Calls())
}

func TestServer_FramesHandler_RawPixels(t *testing.T) {
	eng := &testutil.RecordingEngine{Result: testutil.SingleBlockText()}
	s := newTestServer(t, Config{}, eng)

	f := testutil.BGRAFrame(testutil.MarkerImage(2, 2), orientation.Up)
	req := httptest.NewRequest(http.MethodPost, "/frames?format=bgra&width=2&height=2", bytes.NewReader(f.Buffer.Data))
	w := httptest.NewRecorder()
	s.framesHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, eng.Images(), 1)
	assert.Equal(t, "top-left", testutil.MarkerCorner(eng.Images()[0]))
}

func TestServer_FramesHandler_NullResult(t *testing.T) {
	tests := []struct {
		name string
		eng  *testutil.RecordingEngine
		body []byte
	}{
		{"undecodable frame", &testutil.RecordingEngine{Result: testutil.SingleBlockText()}, []byte("garbage")},
		{"engine failure", &testutil.RecordingEngine{Err: errors.New("boom")}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Config{}, tt.eng)
			body := tt.body
			if body == nil {
				body = testutil.EncodePNG(t, testutil.MarkerImage(2, 2))
			}
			w := httptest.NewRecorder()
			s.framesHandler(w, httptest.NewRequest(http.MethodPost, "/frames", bytes.NewReader(body)))
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "null\n", w.Body.String())
		})
	}
}

func TestServer_FramesHandler_OversizedRawDimensions(t *testing.T) {
	eng := &testutil.RecordingEngine{Result: testutil.SingleBlockText()}
	s := newTestServer(t, Config{}, eng)

	req := httptest.NewRequest(http.MethodPost,
		"/frames?format=bgra&width=4611686018427387904&height=1", bytes.NewReader([]byte{1, 2, 3, 4}))
	w := httptest.NewRecorder()
	require.NotPanics(t, func() { s.framesHandler(w, req) })

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null\n", w.Body.String())
	assert.Zero(t, eng.Calls())
}

func TestServer_FramesHandler_Rejections(t *testing.T) {
	s := newTestServer(t, Config{MaxFrameBytes: 16}, nil)
	png := testutil.EncodePNG(t, testutil.MarkerImage(8, 8))

	tests := []struct {
		name   string
		method string
		url    string
		body   []byte
		status int
	}{
		{"method", http.MethodGet, "/frames", nil, http.StatusMethodNotAllowed},
		{"orientation", http.MethodPost, "/frames?orientation=sideways", png, http.StatusBadRequest},
		{"empty body", http.MethodPost, "/frames", nil, http.StatusBadRequest},
		{"too large", http.MethodPost, "/frames", png, http.StatusRequestEntityTooLarge},
		{"format", http.MethodPost, "/frames?format=yuv", []byte("x"), http.StatusBadRequest},
		{"width", http.MethodPost, "/frames?format=gray&width=a&height=1", []byte("x"), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.framesHandler(w, httptest.NewRequest(tt.method, tt.url, bytes.NewReader(tt.body)))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestServer_FramesHandler_Throttle(t *testing.T) {
	eng := &testutil.RecordingEngine{Result: testutil.SingleBlockText()}
	s := newTestServer(t, Config{MaxFPS: 0.001, Burst: 1}, eng)
	png := testutil.EncodePNG(t, testutil.MarkerImage(2, 2))

	w := httptest.NewRecorder()
	s.framesHandler(w, httptest.NewRequest(http.MethodPost, "/frames", bytes.NewReader(png)))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	s.framesHandler(w, httptest.NewRequest(http.MethodPost, "/frames", bytes.NewReader(png)))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "frame_dropped", decodeBody(t, w)["error"])
	assert.Equal(t, 1, eng.Calls())
}

func TestServer_FrameArgs(t *testing.T) {
	s := &Server{outputOrientation: "portrait"}

	assert.Equal(t, map[string]any{processor.OutputOrientationKey: "landscape-left"}, s.frameArgs("landscape-left", true))
	assert.Equal(t, map[string]any{processor.OutputOrientationKey: ""}, s.frameArgs("", true))
	assert.Equal(t, map[string]any{processor.OutputOrientationKey: "portrait"}, s.frameArgs("", false))

	s.outputOrientation = ""
	assert.Empty(t, s.frameArgs("", false))
}

func TestServer_SensorOrientation(t *testing.T) {
	s := &Server{defaultOrientation: orientation.Right}

	o, err := s.sensorOrientation("")
	require.NoError(t, err)
	assert.Equal(t, orientation.Right, o)

	o, err = s.sensorOrientation("Down")
	require.NoError(t, err)
	assert.Equal(t, orientation.Down, o)

	_, err = s.sensorOrientation("north")
	require.Error(t, err)
}
