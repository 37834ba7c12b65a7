package classres

import "chaiclass/report"

// DiagnosticReporter is the sink every classres component reports through
// (spec §6): "accepts messages keyed by a closed set of message kinds;
// each message has an anchor node and a map of named arguments." Anchoring
// to a *report.TextPosition stands in for "anchor node" since node
// identities live in the out-of-scope parser's tree.
type DiagnosticReporter interface {
	Report(kind report.MessageKind, pos *report.TextPosition, args map[string]any)
}

// FileReporter adapts a *report.Reporter (which additionally wants a file
// name per message) into the narrower DiagnosticReporter classres
// components depend on, binding the file name once per class.
type FileReporter struct {
	Reporter *report.Reporter
	File     string
}

func (fr *FileReporter) Report(kind report.MessageKind, pos *report.TextPosition, args map[string]any) {
	fr.Reporter.Report(kind, fr.File, pos, args)
}

// RecordingReporter buffers every diagnostic in memory instead of
// rendering it, which is what the test suite uses to assert on exactly
// which kinds fired.
type RecordingReporter struct {
	Messages []RecordedMessage
}

// RecordedMessage is one diagnostic captured by a RecordingReporter.
type RecordedMessage struct {
	Kind report.MessageKind
	Pos  *report.TextPosition
	Args map[string]any
}

func (rr *RecordingReporter) Report(kind report.MessageKind, pos *report.TextPosition, args map[string]any) {
	rr.Messages = append(rr.Messages, RecordedMessage{Kind: kind, Pos: pos, Args: args})
}

// Count returns how many diagnostics of the given kind were recorded.
func (rr *RecordingReporter) Count(kind report.MessageKind) int {
	n := 0
	for _, m := range rr.Messages {
		if m.Kind == kind {
			n++
		}
	}
	return n
}
