// Package processor runs the per-frame flow: acquire the bitmap, resolve
// the detection orientation, rotate, detect and project.
package processor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/MeKo-Tech/textframe/internal/common"
	"github.com/MeKo-Tech/textframe/internal/engine"
	"github.com/MeKo-Tech/textframe/internal/frame"
	"github.com/MeKo-Tech/textframe/internal/orientation"
	"github.com/MeKo-Tech/textframe/internal/projector"
)

// OutputOrientationKey is the only argument key the processor reads.
const OutputOrientationKey = "outputOrientation"

// Processor holds the shared engine handle. It has no other state and is
// safe for concurrent use when the engine is.
type Processor struct {
	engine engine.Engine
	logger *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger used for frame failures and debug output.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a processor around an already constructed engine.
func New(e engine.Engine, opts ...Option) (*Processor, error) {
	if e == nil {
		return nil, fmt.Errorf("processor requires an engine")
	}
	p := &Processor{engine: e, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Engine returns the engine handle.
func (p *Processor) Engine() engine.Engine { return p.engine }

// Process handles one frame and returns the boundary map, or nil when the
// frame could not be processed. Failures are logged, never returned.
func (p *Processor) Process(f *frame.Frame, args map[string]any) map[string]any {
	res, _, err := p.ProcessFrame(f, args)
	if err != nil {
		p.logger.Error("Frame dropped", "error", err, "status", status(err))
		return nil
	}
	return projector.Envelope(res)
}

// ProcessFrame is Process with typed results. It also returns the
// orientation handed to the engine.
func (p *Processor) ProcessFrame(f *frame.Frame, args map[string]any) (*projector.Result, orientation.Orientation, error) {
	start := time.Now()
	res, o, err := p.process(f, args)
	frameDuration.Observe(time.Since(start).Seconds())
	framesTotal.WithLabelValues(status(err)).Inc()
	if err == nil {
		blocksDetected.Observe(float64(len(res.Blocks)))
	}
	return res, o, err
}

func (p *Processor) process(f *frame.Frame, args map[string]any) (res *projector.Result, o orientation.Orientation, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, &FrameError{Kind: ErrPanic, Err: fmt.Errorf("%v", r)}
		}
	}()

	if f == nil || f.Buffer == nil {
		return nil, orientation.Up, &FrameError{Kind: ErrBufferUnavailable}
	}

	timer := common.NewStageTimer()
	img, err := f.Buffer.Bitmap()
	if err != nil {
		return nil, orientation.Up, &FrameError{Kind: ErrBitmapConversion, Err: err}
	}
	timer.Mark("decode")

	requested, ok := RequestedOutput(args)
	o = orientation.Resolve(f.Orientation, requested, ok)
	resolvedOrientation.WithLabelValues(o.String()).Inc()
	p.logger.Debug("Resolved frame orientation",
		"sensor", f.Orientation.String(),
		"requested", requested,
		"requested_present", ok,
		"resolved", o.String())

	upright := orientation.Upright(img, o)
	timer.Mark("upright")

	text, err := p.engine.Recognize(upright)
	if err != nil {
		return nil, o, &FrameError{Kind: ErrDetection, Err: err}
	}
	timer.Mark("detection")

	res = projector.Project(text)
	timer.Mark("projection")

	for _, st := range timer.Stages() {
		stageDuration.WithLabelValues(st.Name).Observe(st.Duration.Seconds())
	}
	attrs := append([]any{"blocks", len(res.Blocks)}, timer.LogAttrs()...)
	attrs = append(attrs, "total_ms", float64(timer.Total().Microseconds())/1000)
	p.logger.Debug("Frame processed", attrs...)
	return res, o, nil
}

// RequestedOutput extracts the requested output orientation. A missing key
// and a non-string value are both reported as absent.
func RequestedOutput(args map[string]any) (string, bool) {
	v, ok := args[OutputOrientationKey].(string)
	return v, ok
}
