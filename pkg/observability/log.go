package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug records to a
// charmbracelet logger.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to l, prefixed with "hooks".
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l.WithPrefix("hooks")}
}

func (h *LogHooks) OnDecodeStart(_ context.Context, size int) {
	h.logger.Debug("decode start", "bytes", size)
}

func (h *LogHooks) OnDecodeComplete(_ context.Context, hash string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("decode failed", "duration", d, "err", err)
		return
	}
	h.logger.Debug("decode complete", "hash", shortHash(hash), "duration", d)
}

func (h *LogHooks) OnFormatStart(_ context.Context, sections []string) {
	h.logger.Debug("format start", "sections", sections)
}

func (h *LogHooks) OnFormatComplete(_ context.Context, lines int, d time.Duration) {
	h.logger.Debug("format complete", "lines", lines, "duration", d)
}

func (h *LogHooks) OnTreeRender(_ context.Context, format string, d time.Duration, err error) {
	h.logger.Debug("tree rendered", "format", format, "duration", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnCacheError(_ context.Context, keyType string, err error) {
	h.logger.Warn("cache unavailable", "type", keyType, "err", err)
}

func (h *LogHooks) OnRequest(_ context.Context, id, method, path string) {
	h.logger.Debug("request", "id", id, "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, id, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "id", id, "method", method, "path", path, "status", status, "duration", d)
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
