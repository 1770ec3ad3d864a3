// Package buildlog collects the severity-tagged messages a rig build reports
// about its nodes and interface parameters.
//
// Messages are attached to the name of the offending object and, when it came
// from a rig file, to its source range. A Log renders as hcl.Diagnostics so
// callers can print it with hcl's diagnostic writers.
package buildlog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/camrig/internal/ctxlog"
)

// Severity classifies a build message.
type Severity uint8

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", uint8(s))
	}
}

func (s Severity) level() slog.Level {
	switch s {
	case Warning:
		return slog.LevelWarn
	case Error:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Message is one entry of a build log.
type Message struct {
	Severity Severity
	Object   string
	Summary  string
	Detail   string
	Subject  *hcl.Range
}

func (m Message) String() string {
	s := m.Severity.String() + ": "
	if m.Object != "" {
		s += m.Object + ": "
	}
	s += m.Summary
	if m.Detail != "" {
		s += "; " + m.Detail
	}
	return s
}

// Log accumulates build messages and mirrors each one to the slog logger
// carried by the context it was created with.
type Log struct {
	ctx      context.Context
	logger   *slog.Logger
	messages []Message
}

// New returns an empty log bound to the logger in ctx.
func New(ctx context.Context) *Log {
	return &Log{ctx: ctx, logger: ctxlog.FromContext(ctx)}
}

// Add appends m.
func (l *Log) Add(m Message) {
	l.messages = append(l.messages, m)
	attrs := []slog.Attr{slog.String("summary", m.Summary)}
	if m.Object != "" {
		attrs = append(attrs, slog.String("object", m.Object))
	}
	if m.Detail != "" {
		attrs = append(attrs, slog.String("detail", m.Detail))
	}
	if m.Subject != nil {
		attrs = append(attrs, slog.String("range", m.Subject.String()))
	}
	l.logger.LogAttrs(l.ctx, m.Severity.level(), "Build message.", attrs...)
}

func (l *Log) Info(object string, subject *hcl.Range, summary, detail string) {
	l.Add(Message{Severity: Info, Object: object, Subject: subject, Summary: summary, Detail: detail})
}

func (l *Log) Warning(object string, subject *hcl.Range, summary, detail string) {
	l.Add(Message{Severity: Warning, Object: object, Subject: subject, Summary: summary, Detail: detail})
}

func (l *Log) Error(object string, subject *hcl.Range, summary, detail string) {
	l.Add(Message{Severity: Error, Object: object, Subject: subject, Summary: summary, Detail: detail})
}

// Messages returns every message in report order.
func (l *Log) Messages() []Message {
	return append([]Message(nil), l.messages...)
}

// Count returns the number of messages with the given severity.
func (l *Log) Count(sev Severity) int {
	n := 0
	for _, m := range l.messages {
		if m.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any error was logged.
func (l *Log) HasErrors() bool {
	return l.Count(Error) > 0
}

// ForObject returns the messages attached to the named object.
func (l *Log) ForObject(name string) []Message {
	var out []Message
	for _, m := range l.messages {
		if m.Object == name {
			out = append(out, m)
		}
	}
	return out
}

// Diagnostics renders warnings and errors as hcl.Diagnostics. Info messages
// have no hcl counterpart and are left out.
func (l *Log) Diagnostics() hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, m := range l.messages {
		var sev hcl.DiagnosticSeverity
		switch m.Severity {
		case Warning:
			sev = hcl.DiagWarning
		case Error:
			sev = hcl.DiagError
		default:
			continue
		}
		detail := m.Detail
		if m.Object != "" {
			detail = fmt.Sprintf("%s: %s", m.Object, detail)
		}
		diags = append(diags, &hcl.Diagnostic{
			Severity: sev,
			Summary:  m.Summary,
			Detail:   detail,
			Subject:  m.Subject,
		})
	}
	return diags
}
