package support

import (
	"fmt"

	"github.com/MeKo-Tech/textframe/internal/frame"
	"github.com/MeKo-Tech/textframe/internal/orientation"
	"github.com/MeKo-Tech/textframe/internal/processor"
	"github.com/MeKo-Tech/textframe/internal/testutil"
	"github.com/cucumber/godog"
)

func (testCtx *TestContext) aFrameCapturedInOrientation(width, height int, name string) error {
	o, err := orientation.Parse(name)
	if err != nil {
		return err
	}
	data, err := encodePNG(testutil.MarkerImage(width, height))
	if err != nil {
		return err
	}
	testCtx.FrameData = data
	testCtx.Frame = frame.FromBytes(data, o)
	return nil
}

func (testCtx *TestContext) aFrameWithoutABuffer() error {
	testCtx.Frame = &frame.Frame{Orientation: orientation.Up}
	return nil
}

func (testCtx *TestContext) aFrameWithUndecodableData() error {
	testCtx.FrameData = []byte("not an image")
	testCtx.Frame = frame.FromBytes(testCtx.FrameData, orientation.Up)
	return nil
}

func (testCtx *TestContext) theRequestedOutputOrientationIs(name string) error {
	testCtx.Args[processor.OutputOrientationKey] = name
	return nil
}

func (testCtx *TestContext) theRequestedOutputOrientationIsTheNumber(n int) error {
	testCtx.Args[processor.OutputOrientationKey] = n
	return nil
}

func (testCtx *TestContext) theFrameIsProcessed() error {
	proc, err := testCtx.newProcessor()
	if err != nil {
		return err
	}
	testCtx.LastResult = proc.Process(testCtx.Frame, testCtx.Args)
	testCtx.Processed = true
	return nil
}

func (testCtx *TestContext) theEngineIsNotCalled() error {
	if calls := testCtx.Engine.Calls(); calls != 0 {
		return fmt.Errorf("expected no detection, engine was called %d times", calls)
	}
	return nil
}

func (testCtx *TestContext) theEngineReceivesAnImageWithTheMarkerAt(width, height int, corner string) error {
	images := testCtx.Engine.Images()
	if len(images) != 1 {
		return fmt.Errorf("expected one detection, got %d", len(images))
	}
	b := images[0].Bounds()
	if b.Dx() != width || b.Dy() != height {
		return fmt.Errorf("expected a %dx%d image, got %dx%d", width, height, b.Dx(), b.Dy())
	}
	if got := testutil.MarkerCorner(images[0]); got != corner {
		return fmt.Errorf("expected the marker at %q, found it at %q", corner, got)
	}
	return nil
}

func (testCtx *TestContext) resolvingGives(sensor, output, want string) error {
	s, err := orientation.Parse(sensor)
	if err != nil {
		return err
	}
	var got orientation.Orientation
	if output == "" {
		got = orientation.Resolve(s, "", false)
	} else {
		got = orientation.Resolve(s, output, true)
	}
	if got.String() != want {
		return fmt.Errorf("resolve(%s, %q): expected %s, got %s", sensor, output, want, got)
	}
	return nil
}

// RegisterFrameSteps registers the frame and orientation steps.
func (testCtx *TestContext) RegisterFrameSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a (\d+)x(\d+) frame captured in orientation "([^"]*)"$`, testCtx.aFrameCapturedInOrientation)
	sc.Step(`^a frame without a buffer$`, testCtx.aFrameWithoutABuffer)
	sc.Step(`^a frame with undecodable data$`, testCtx.aFrameWithUndecodableData)
	sc.Step(`^the requested output orientation is "([^"]*)"$`, testCtx.theRequestedOutputOrientationIs)
	sc.Step(`^the requested output orientation is the number (\d+)$`, testCtx.theRequestedOutputOrientationIsTheNumber)
	sc.Step(`^the frame is processed$`, testCtx.theFrameIsProcessed)
	sc.Step(`^the engine is not called$`, testCtx.theEngineIsNotCalled)
	sc.Step(`^the engine receives a (\d+)x(\d+) image with the marker at the "([^"]*)" corner$`,
		testCtx.theEngineReceivesAnImageWithTheMarkerAt)
	sc.Step(`^sensor "([^"]*)" with output "([^"]*)" resolves to "([^"]*)"$`, testCtx.resolvingGives)
}
