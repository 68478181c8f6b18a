// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package blog wraps zap for cptrie's build/freeze diagnostics: Freeze
// logs the final highStart/highValue and the data and index lengths. A
// Builder works fine without one installed — NoOp returns a logger that
// discards everything, so the core package never requires a logger to
// be configured, matching spec.md §9's "no global state" note.
package blog

import "go.uber.org/zap"

// Logger is a thin, nil-safe wrapper around *zap.SugaredLogger.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New wraps an existing zap logger, tagging every entry with the
// "component":"cptrie" field.
func New(z *zap.Logger) *Logger {
	if z == nil {
		return NoOp()
	}
	return &Logger{sugar: z.With(zap.String("component", "cptrie")).Sugar()}
}

// NoOp returns a Logger that discards everything, safe to use as a
// zero-cost default.
func NoOp() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// Debugw logs build/freeze diagnostics at debug level.
func (l *Logger) Debugw(msg string, kv ...any) {
	if l == nil {
		return
	}
	l.sugar.Debugw(msg, kv...)
}

// Infow logs a milestone (freeze completed, trie serialized) at info level.
func (l *Logger) Infow(msg string, kv ...any) {
	if l == nil {
		return
	}
	l.sugar.Infow(msg, kv...)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	if l == nil {
		return nil
	}
	return l.sugar.Sync()
}
