// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag implements the error-kind taxonomy of the explicit
// hydraulic-sediment core: fatal aborts, recoverable clamps, and advisories.
package diag

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Kind identifies one of the error kinds observable in the core.
type Kind int

const (
	// NegativeDepth is fatal: a water-depth update produced a negative
	// result whose magnitude exceeds TOLERANCE.
	NegativeDepth Kind = iota
	// NegativeConcentration is a warning: clamp to zero and continue.
	NegativeConcentration
	// CourantExceeded is advisory: never fatal.
	CourantExceeded
	// TopologyInconsistency is fatal at init.
	TopologyInconsistency
	// ConfigurationError is fatal at init.
	ConfigurationError
)

func (k Kind) String() string {
	switch k {
	case NegativeDepth:
		return "NegativeDepth"
	case NegativeConcentration:
		return "NegativeConcentration"
	case CourantExceeded:
		return "CourantExceeded"
	case TopologyInconsistency:
		return "TopologyInconsistency"
	case ConfigurationError:
		return "ConfigurationError"
	default:
		return "Unknown"
	}
}

// Fatal reports whether a Kind aborts the run.
func (k Kind) Fatal() bool {
	switch k {
	case NegativeDepth, TopologyInconsistency, ConfigurationError:
		return true
	default:
		return false
	}
}

// Error is a located, typed error raised by the core.
type Error struct {
	Kind       Kind
	Row, Col   int // overland location, when applicable (-1 if not)
	Link, Node int // channel location, when applicable (-1 if not)
	Solids     int // solids class index, when applicable (-1 if not)
	Msg        string
	Cause      error
}

// Err builds a located error with -1 sentinels for unused location fields.
func Err(kind Kind, msg string, args ...interface{}) *Error {
	return &Error{Kind: kind, Row: -1, Col: -1, Link: -1, Node: -1, Solids: -1, Msg: fmt.Sprintf(msg, args...)}
}

// AtCell sets the overland location.
func (e *Error) AtCell(row, col int) *Error {
	e.Row, e.Col = row, col
	return e
}

// AtNode sets the channel location.
func (e *Error) AtNode(link, node int) *Error {
	e.Link, e.Node = link, node
	return e
}

// WithSolids sets the solids-class index.
func (e *Error) WithSolids(s int) *Error {
	e.Solids = s
	return e
}

// Wrap attaches an underlying cause.
func (e *Error) Wrap(cause error) *Error {
	e.Cause = cause
	return e
}

func (e *Error) Error() string {
	loc := ""
	if e.Row >= 0 {
		loc = fmt.Sprintf(" at cell (%d,%d)", e.Row, e.Col)
	} else if e.Link >= 0 {
		loc = fmt.Sprintf(" at node (link %d, node %d)", e.Link, e.Node)
	}
	if e.Solids >= 0 {
		loc += fmt.Sprintf(" [solids class %d]", e.Solids)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s%s: %s: %v", e.Kind, loc, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s%s: %s", e.Kind, loc, e.Msg)
}

// Report writes a *Error to the diagnostic stream at the severity matching
// its Kind: fatal kinds at Error level, CourantExceeded at Info, everything
// else (recoverable clamps) at Warn.
func Report(log *logrus.Entry, e *Error) {
	switch {
	case e.Kind.Fatal():
		log.Error(e.Error())
	case e.Kind == CourantExceeded:
		log.Info(e.Error())
	default:
		log.Warn(e.Error())
	}
}
