package report

import (
	"fmt"
	"sort"
	"sync"
)

// Enumeration of the reporter's log levels, mirroring the teacher's
// LogLevel* constants (`src/logging/logger.go`).
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only errors
	LogLevelWarning        // errors and warnings
	LogLevelVerbose        // errors, warnings, and phase progress (default)
)

// CompileMessage is a single diagnostic anchored at a source position. The
// Args map carries the named arguments the message kind's template
// interpolates — this is what spec §6 calls "a map of named arguments".
type CompileMessage struct {
	Kind     MessageKind
	Position *TextPosition
	File     string
	Args     map[string]any
	IsError  bool
}

func (cm *CompileMessage) text() string {
	return renderTemplate(cm.Kind, cm.Args)
}

// Reporter accumulates diagnostics and renders them through the console
// display. The classres driver reaches it through classres.FileReporter,
// which binds the file name; a test fixture typically substitutes
// classres.RecordingReporter instead.
type Reporter struct {
	m          sync.Mutex
	logLevel   int
	errorCount int
	warnings   []*CompileMessage
}

// NewReporter creates a reporter at the given log level.
func NewReporter(logLevel int) *Reporter {
	return &Reporter{logLevel: logLevel}
}

// Report records a diagnostic of the given kind. File and pos anchor the
// message for display; pos may be nil for file-level diagnostics.
func (r *Reporter) Report(kind MessageKind, file string, pos *TextPosition, args map[string]any) {
	r.ReportMessage(&CompileMessage{Kind: kind, Position: pos, File: file, Args: args, IsError: true})
}

// ReportWarning records a non-fatal diagnostic of the given kind.
func (r *Reporter) ReportWarning(kind MessageKind, file string, pos *TextPosition, args map[string]any) {
	r.ReportMessage(&CompileMessage{Kind: kind, Position: pos, File: file, Args: args, IsError: false})
}

// ReportMessage records a prebuilt message. Errors are displayed
// immediately (so resolution failures stream to the console as they
// happen); warnings are buffered and flushed at the end of a run, matching
// `src/logging/logger.go`'s handleMsg.
func (r *Reporter) ReportMessage(cm *CompileMessage) {
	r.m.Lock()
	defer r.m.Unlock()

	if cm.IsError {
		r.errorCount++

		if r.logLevel > LogLevelSilent {
			displayCompileMessage(cm)
		}
	} else {
		r.warnings = append(r.warnings, cm)
	}
}

// ShouldProceed reports whether resolution should keep running. The core
// never stops on its own account (spec §7: "no error unwinds past the
// current class's resolution") — this is offered for a driver that wants
// the teacher's staged boolean-gate shape between passes.
func (r *Reporter) ShouldProceed() bool {
	return r.errorCount == 0
}

// ErrorCount returns the number of errors reported so far.
func (r *Reporter) ErrorCount() int {
	r.m.Lock()
	defer r.m.Unlock()
	return r.errorCount
}

// FlushWarnings displays all buffered warnings, sorted by file then
// position, and clears the buffer.
func (r *Reporter) FlushWarnings() {
	r.m.Lock()
	defer r.m.Unlock()

	if r.logLevel < LogLevelWarning {
		r.warnings = nil
		return
	}

	sort.SliceStable(r.warnings, func(i, j int) bool {
		if r.warnings[i].File != r.warnings[j].File {
			return r.warnings[i].File < r.warnings[j].File
		}
		if r.warnings[i].Position == nil || r.warnings[j].Position == nil {
			return false
		}
		return r.warnings[i].Position.StartLn < r.warnings[j].Position.StartLn
	})

	for _, w := range r.warnings {
		displayCompileMessage(w)
	}
	r.warnings = nil
}

// renderTemplate interpolates a message kind's human-readable template with
// its named arguments. Unknown keys in the template are left as literal
// `%(name)` so a missing argument is obvious in output rather than silently
// dropped.
func renderTemplate(kind MessageKind, args map[string]any) string {
	tmpl, ok := messageTemplates[kind]
	if !ok {
		return kind.String()
	}

	return expandTemplate(tmpl, args)
}

func expandTemplate(tmpl string, args map[string]any) string {
	out := []byte{}
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] == '%' && i+1 < len(tmpl) && tmpl[i+1] == '(' {
			end := i + 2
			for end < len(tmpl) && tmpl[end] != ')' {
				end++
			}
			if end < len(tmpl) {
				name := tmpl[i+2 : end]
				if v, ok := args[name]; ok {
					out = append(out, []byte(fmt.Sprint(v))...)
				} else {
					out = append(out, []byte(tmpl[i:end+1])...)
				}
				i = end
				continue
			}
		}
		out = append(out, tmpl[i])
	}
	return string(out)
}
