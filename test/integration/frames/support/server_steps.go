package support

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MeKo-Tech/textframe/internal/server"
	"github.com/cucumber/godog"
)

func (testCtx *TestContext) theFrameServerIsRunning() error {
	return testCtx.startTestHTTPServer(server.Config{})
}

func (testCtx *TestContext) theFrameServerIsRunningWithOutputOrientation(name string) error {
	return testCtx.startTestHTTPServer(server.Config{OutputOrientation: name})
}

func (testCtx *TestContext) theFrameServerIsRunningLimitedTo(fps float64, burst int) error {
	return testCtx.startTestHTTPServer(server.Config{MaxFPS: fps, Burst: burst})
}

func (testCtx *TestContext) iPostTheFrameWithQuery(query string) error {
	if testCtx.HTTPServer == nil {
		return errors.New("server is not running")
	}
	url := testCtx.HTTPServer.URL() + "/frames"
	if query != "" {
		url += "?" + query
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(testCtx.FrameData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	testCtx.LastStatus = resp.StatusCode
	testCtx.LastBody = strings.TrimSpace(string(body))
	testCtx.LastHeaders = map[string]string{}
	for k := range resp.Header {
		testCtx.LastHeaders[k] = resp.Header.Get(k)
	}

	testCtx.Processed = resp.StatusCode == http.StatusOK
	testCtx.LastResult = nil
	if testCtx.Processed {
		if err := json.Unmarshal(body, &testCtx.LastResult); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (testCtx *TestContext) iPostTheFrameTimesWithQuery(n int, query string) error {
	for range n {
		if err := testCtx.iPostTheFrameWithQuery(query); err != nil {
			return err
		}
	}
	return nil
}

func (testCtx *TestContext) theResponseStatusIs(status int) error {
	if testCtx.LastStatus != status {
		return fmt.Errorf("expected status %d, got %d (%s)", status, testCtx.LastStatus, testCtx.LastBody)
	}
	return nil
}

func (testCtx *TestContext) theResponseErrorIs(code string) error {
	var resp server.ErrorResponse
	if err := json.Unmarshal([]byte(testCtx.LastBody), &resp); err != nil {
		return fmt.Errorf("decode error response: %w", err)
	}
	if resp.Error != code {
		return fmt.Errorf("expected error %q, got %q", code, resp.Error)
	}
	return nil
}

func (testCtx *TestContext) theResponseHeaderIs(name, value string) error {
	if got := testCtx.LastHeaders[http.CanonicalHeaderKey(name)]; got != value {
		return fmt.Errorf("expected header %s=%q, got %q", name, value, got)
	}
	return nil
}

// RegisterServerSteps registers the HTTP server steps.
func (testCtx *TestContext) RegisterServerSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the frame server is running$`, testCtx.theFrameServerIsRunning)
	sc.Step(`^the frame server is running with output orientation "([^"]*)"$`,
		testCtx.theFrameServerIsRunningWithOutputOrientation)
	sc.Step(`^the frame server is running limited to `+num+` frames per second with burst (\d+)$`,
		testCtx.theFrameServerIsRunningLimitedTo)
	sc.Step(`^I post the frame with query "([^"]*)"$`, testCtx.iPostTheFrameWithQuery)
	sc.Step(`^I post the frame (\d+) times with query "([^"]*)"$`, testCtx.iPostTheFrameTimesWithQuery)
	sc.Step(`^the response status is (\d+)$`, testCtx.theResponseStatusIs)
	sc.Step(`^the response error is "([^"]*)"$`, testCtx.theResponseErrorIs)
	sc.Step(`^the response header "([^"]*)" is "([^"]*)"$`, testCtx.theResponseHeaderIs)
}
