package support

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cucumber/godog"
)

const num = `(-?\d+(?:\.\d+)?)`

func (testCtx *TestContext) result() (map[string]any, error) {
	if !testCtx.Processed {
		return nil, errors.New("no frame has been processed")
	}
	if testCtx.LastResult == nil {
		return nil, errors.New("the result is null")
	}
	res, ok := testCtx.LastResult["result"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("missing result key in %v", testCtx.LastResult)
	}
	return res, nil
}

// child returns entry i (1-based) of the list stored under key.
func child(parent map[string]any, key string, i int) (map[string]any, error) {
	list, ok := parent[key].([]any)
	if !ok {
		return nil, fmt.Errorf("%s is not a list", key)
	}
	if i < 1 || i > len(list) {
		return nil, fmt.Errorf("%s has %d entries, wanted entry %d", key, len(list), i)
	}
	m, ok := list[i-1].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s entry %d is not an object", key, i)
	}
	return m, nil
}

func (testCtx *TestContext) block(b int) (map[string]any, error) {
	res, err := testCtx.result()
	if err != nil {
		return nil, err
	}
	return child(res, "blocks", b)
}

func (testCtx *TestContext) line(l, b int) (map[string]any, error) {
	block, err := testCtx.block(b)
	if err != nil {
		return nil, err
	}
	return child(block, "lines", l)
}

func (testCtx *TestContext) element(e, l, b int) (map[string]any, error) {
	line, err := testCtx.line(l, b)
	if err != nil {
		return nil, err
	}
	return child(line, "elements", e)
}

func expectNumbers(m map[string]any, want map[string]float64) error {
	for key, w := range want {
		got, ok := m[key].(float64)
		if !ok {
			return fmt.Errorf("%s is missing or not a number: %v", key, m[key])
		}
		if math.Abs(got-w) > 1e-9 {
			return fmt.Errorf("%s: expected %v, got %v", key, w, got)
		}
	}
	return nil
}

func expectFrame(node map[string]any, x, y, width, height float64) error {
	frame, ok := node["frame"].(map[string]any)
	if !ok {
		return errors.New("node has no frame")
	}
	return expectNumbers(frame, map[string]float64{"x": x, "y": y, "width": width, "height": height})
}

func (testCtx *TestContext) theResultIsNull() error {
	if !testCtx.Processed {
		return errors.New("no frame has been processed")
	}
	if testCtx.LastResult != nil {
		return fmt.Errorf("expected a null result, got %v", testCtx.LastResult)
	}
	return nil
}

func (testCtx *TestContext) theResultTextIs(want string) error {
	res, err := testCtx.result()
	if err != nil {
		return err
	}
	if res["text"] != want {
		return fmt.Errorf("expected text %q, got %v", want, res["text"])
	}
	return nil
}

func (testCtx *TestContext) theResultHasBlocks(n int) error {
	res, err := testCtx.result()
	if err != nil {
		return err
	}
	blocks, _ := res["blocks"].([]any)
	if len(blocks) != n {
		return fmt.Errorf("expected %d blocks, got %d", n, len(blocks))
	}
	return nil
}

func (testCtx *TestContext) blockHasFrame(b int, x, y, width, height float64) error {
	block, err := testCtx.block(b)
	if err != nil {
		return err
	}
	return expectFrame(block, x, y, width, height)
}

func (testCtx *TestContext) elementHasFrame(e, l, b int, x, y, width, height float64) error {
	element, err := testCtx.element(e, l, b)
	if err != nil {
		return err
	}
	return expectFrame(element, x, y, width, height)
}

func (testCtx *TestContext) blockHasBoundingBox(b int, left, top, right, bottom float64) error {
	block, err := testCtx.block(b)
	if err != nil {
		return err
	}
	box, ok := block["boundingBox"].(map[string]any)
	if !ok {
		return fmt.Errorf("block %d has no bounding box", b)
	}
	return expectNumbers(box, map[string]float64{"left": left, "top": top, "right": right, "bottom": bottom})
}

func (testCtx *TestContext) blockHasNoBoundingBox(b int) error {
	block, err := testCtx.block(b)
	if err != nil {
		return err
	}
	v, present := block["boundingBox"]
	if !present {
		return errors.New("boundingBox key is missing")
	}
	if v != nil {
		return fmt.Errorf("expected a null bounding box, got %v", v)
	}
	return nil
}

func (testCtx *TestContext) lineHasCornerPoints(l, b, n int) error {
	line, err := testCtx.line(l, b)
	if err != nil {
		return err
	}
	points, _ := line["cornerPoints"].([]any)
	if len(points) != n {
		return fmt.Errorf("expected %d corner points, got %d", n, len(points))
	}
	return nil
}

func (testCtx *TestContext) lineHasLanguages(l, b int, want string) error {
	line, err := testCtx.line(l, b)
	if err != nil {
		return err
	}
	langs, _ := line["recognizedLanguages"].([]any)
	got := make([]string, 0, len(langs))
	for _, lang := range langs {
		got = append(got, fmt.Sprint(lang))
	}
	if strings.Join(got, ",") != want {
		return fmt.Errorf("expected languages %q, got %q", want, strings.Join(got, ","))
	}
	return nil
}

func (testCtx *TestContext) everyElementHasAnEmptySymbolList() error {
	res, err := testCtx.result()
	if err != nil {
		return err
	}
	blocks, _ := res["blocks"].([]any)
	for _, b := range blocks {
		lines, _ := b.(map[string]any)["lines"].([]any)
		for _, l := range lines {
			elements, _ := l.(map[string]any)["elements"].([]any)
			for _, e := range elements {
				symbols, ok := e.(map[string]any)["symbols"].([]any)
				if !ok || len(symbols) != 0 {
					return fmt.Errorf("element %v does not carry an empty symbol list", e)
				}
			}
		}
	}
	return nil
}

func (testCtx *TestContext) theFrameDropIsLogged() error {
	if !strings.Contains(testCtx.LastLogs.String(), "Frame dropped") {
		return fmt.Errorf("expected the dropped frame to be logged, got %q", testCtx.LastLogs.String())
	}
	return nil
}

// RegisterResultSteps registers the result assertions.
func (testCtx *TestContext) RegisterResultSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the result is null$`, testCtx.theResultIsNull)
	sc.Step(`^the result text is "([^"]*)"$`, testCtx.theResultTextIs)
	sc.Step(`^the result has (\d+) blocks?$`, testCtx.theResultHasBlocks)
	sc.Step(`^block (\d+) has frame x=`+num+` y=`+num+` width=`+num+` height=`+num+`$`, testCtx.blockHasFrame)
	sc.Step(`^element (\d+) of line (\d+) of block (\d+) has frame x=`+num+` y=`+num+` width=`+num+` height=`+num+`$`,
		testCtx.elementHasFrame)
	sc.Step(`^block (\d+) has bounding box left=`+num+` top=`+num+` right=`+num+` bottom=`+num+`$`,
		testCtx.blockHasBoundingBox)
	sc.Step(`^block (\d+) has no bounding box$`, testCtx.blockHasNoBoundingBox)
	sc.Step(`^line (\d+) of block (\d+) has (\d+) corner points$`, testCtx.lineHasCornerPoints)
	sc.Step(`^line (\d+) of block (\d+) has languages "([^"]*)"$`, testCtx.lineHasLanguages)
	sc.Step(`^every element has an empty symbol list$`, testCtx.everyElementHasAnEmptySymbolList)
	sc.Step(`^the frame drop is logged$`, testCtx.theFrameDropIsLogged)
}
