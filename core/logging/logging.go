/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tabula Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package logging is a thin wrapper around logrus.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Fields aliases logrus.Fields
type Fields = logrus.Fields

// Logger is the logging interface used across tabula.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	WithField(key string, value any) Logger
	WithFields(fields Fields) Logger
}

// StandardLogger is a Logger whose level, output and format can be changed.
type StandardLogger struct {
	entry *logrus.Entry
}

// New creates a logger writing text to stderr at info level.
func New() *StandardLogger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	return &StandardLogger{entry: logrus.NewEntry(l)}
}

// NewNoOpLogger returns a logger that discards everything.
func NewNoOpLogger() *StandardLogger {
	l := New()
	l.SetOutput(io.Discard)
	return l
}

// ParseLevel maps a configured level name to a logrus level.
func ParseLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel, nil
	case "", "info":
		return logrus.InfoLevel, nil
	case "warn":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return logrus.InfoLevel, fmt.Errorf("invalid log level: %v", level)
	}
}

// SetLevel sets the level from its configured name.
func (l *StandardLogger) SetLevel(level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	l.entry.Logger.SetLevel(lvl)
	return nil
}

// SetFormat selects the "text" or "json" formatter.
func (l *StandardLogger) SetFormat(format string) error {
	switch format {
	case "", "text":
		l.entry.Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		l.entry.Logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format: %v", format)
	}
	return nil
}

// SetOutput sets the destination of log entries.
func (l *StandardLogger) SetOutput(w io.Writer) {
	l.entry.Logger.SetOutput(w)
}

// WithField implements Logger.
func (l *StandardLogger) WithField(key string, value any) Logger {
	return &StandardLogger{entry: l.entry.WithField(key, value)}
}

// WithFields implements Logger.
func (l *StandardLogger) WithFields(fields Fields) Logger {
	return &StandardLogger{entry: l.entry.WithFields(fields)}
}

// Debugf implements Logger.
func (l *StandardLogger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }

// Infof implements Logger.
func (l *StandardLogger) Infof(format string, args ...any) { l.entry.Infof(format, args...) }

// Warnf implements Logger.
func (l *StandardLogger) Warnf(format string, args ...any) { l.entry.Warnf(format, args...) }

// Errorf implements Logger.
func (l *StandardLogger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }
