package render

import "log/slog"

// LogSound stands in for an audio backend: every effect is logged at debug.
type LogSound struct{}

func (LogSound) Play(name string) { slog.Debug("sound", "effect", name) }
