// Package debug provides mask-gated trace logging for the dyntrans engine.
// The original wrote straight to a configparser-registered DEBUGFILE; this
// version routes through log/slog so debug output shares util/logger's
// stderr/file teeing instead of opening a second, independently-configured
// file.
package debug

import (
	"fmt"
	"log/slog"
)

// Debug category bits, generalized from the original's per-device masks to
// the dyntrans engine's own subsystems.
const (
	MaskDecode = 1 << iota
	MaskBranch
	MaskWindow
	MaskBus
)

// Debugf emits a trace line for module if mask&level is non-zero.
func Debugf(module string, mask, level int, format string, a ...any) {
	if mask&level == 0 {
		return
	}
	slog.Debug(module, "trace", fmt.Sprintf(format, a...))
}

// DebugAddrf is Debugf with a guest address prefixed, for decode/branch/bus
// traces keyed by the instruction or access address.
func DebugAddrf(module string, addr uint64, mask, level int, format string, a ...any) {
	if mask&level == 0 {
		return
	}
	slog.Debug(module, "pc", fmt.Sprintf("%#x", addr), "trace", fmt.Sprintf(format, a...))
}
