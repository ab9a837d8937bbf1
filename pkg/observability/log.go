package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. Failures are
// logged at warn level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log through logger (log.Default when nil).
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) done(msg string, err error, kv ...any) {
	if err != nil {
		h.Logger.Warn(msg, append(kv, "err", err)...)
		return
	}
	h.Logger.Debug(msg, kv...)
}

// OnValidateComplete implements PipelineHooks.
func (h *LogHooks) OnValidateComplete(_ context.Context, shapes, warnings int, d time.Duration, err error) {
	h.done("validated definition", err, "shapes", shapes, "warnings", warnings, "duration", d)
}

// OnLayoutStart implements PipelineHooks.
func (h *LogHooks) OnLayoutStart(_ context.Context, archetype string, shapes int) {
	h.Logger.Debug("layout started", "archetype", archetype, "shapes", shapes)
}

// OnLayoutComplete implements PipelineHooks.
func (h *LogHooks) OnLayoutComplete(_ context.Context, archetype string, primitives int, d time.Duration, err error) {
	h.done("layout finished", err, "archetype", archetype, "primitives", primitives, "duration", d)
}

// OnVerifyComplete implements PipelineHooks.
func (h *LogHooks) OnVerifyComplete(_ context.Context, stage string, warnings int, err error) {
	h.done("verified", err, "stage", stage, "warnings", warnings)
}

// OnRenderStart implements PipelineHooks.
func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render started", "formats", formats)
}

// OnRenderComplete implements PipelineHooks.
func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("render finished", err, "formats", formats, "duration", d)
}

// OnCacheHit implements CacheHooks.
func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

// OnCacheMiss implements CacheHooks.
func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

// OnCacheSet implements CacheHooks.
func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

// OnRequest implements ServerHooks.
func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.Logger.Debug("request", "method", method, "route", route)
}

// OnResponse implements ServerHooks.
func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	lvl := log.InfoLevel
	if status >= 500 {
		lvl = log.ErrorLevel
	}
	h.Logger.Log(lvl, "response", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ServerHooks   = (*LogHooks)(nil)
)
