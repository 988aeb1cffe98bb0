package support

import (
	"errors"

	"github.com/MeKo-Tech/textframe/internal/engine"
	"github.com/MeKo-Tech/textframe/internal/testutil"
	"github.com/cucumber/godog"
)

func (testCtx *TestContext) theEngineDetectsASingleBlockOfText() error {
	testCtx.Engine.Result = testutil.SingleBlockText()
	return nil
}

func (testCtx *TestContext) theEngineDetectsTextWithDefectiveGeometry() error {
	testCtx.Engine.Result = testutil.DefectiveText()
	return nil
}

func (testCtx *TestContext) theEngineDetectsABlockWithoutAFrame() error {
	text := testutil.SingleBlockText()
	text.Blocks[0].Frame = nil
	testCtx.Engine.Result = text
	return nil
}

func (testCtx *TestContext) theEngineDetectsNothing() error {
	testCtx.Engine.Result = &engine.Text{}
	return nil
}

func (testCtx *TestContext) theEngineFailsWith(msg string) error {
	testCtx.Engine.Err = errors.New(msg)
	return nil
}

// RegisterEngineSteps registers the detection engine steps.
func (testCtx *TestContext) RegisterEngineSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the engine detects a single block of text$`, testCtx.theEngineDetectsASingleBlockOfText)
	sc.Step(`^the engine detects text with defective geometry$`, testCtx.theEngineDetectsTextWithDefectiveGeometry)
	sc.Step(`^the engine detects a block without a frame$`, testCtx.theEngineDetectsABlockWithoutAFrame)
	sc.Step(`^the engine detects nothing$`, testCtx.theEngineDetectsNothing)
	sc.Step(`^the engine fails with "([^"]*)"$`, testCtx.theEngineFailsWith)
}
