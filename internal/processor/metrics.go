package processor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "textframe_frames_total",
			Help: "Number of processed frames by outcome",
		},
		[]string{"status"},
	)

	frameDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "textframe_frame_duration_seconds",
			Help:    "Time spent processing a single frame",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	blocksDetected = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "textframe_blocks_detected",
			Help:    "Number of text blocks detected per frame",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	resolvedOrientation = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "textframe_resolved_orientation_total",
			Help: "Orientation passed to the detection engine",
		},
		[]string{"orientation"},
	)

	stageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "textframe_stage_duration_seconds",
			Help:    "Time spent in each step of frame processing",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"stage"},
	)
)
