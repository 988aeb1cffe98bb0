package projector

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defectCornerPoint = "corner_point"
	defectLanguage    = "language"
)

var geometryDefects = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "textframe_geometry_defects_total",
		Help: "Number of corner point or language lists truncated during projection",
	},
	[]string{"kind"},
)

func reportDefect(kind, msg string, attrs ...any) {
	geometryDefects.WithLabelValues(kind).Inc()
	slog.Debug(msg, append([]any{"kind", kind}, attrs...)...)
}
