package report

// TextPosition represents a positional range in source text: a starting
// line/column and an ending line/column (one past the last character).
// Lines and columns are 1-indexed to match the teacher's convention.
type TextPosition struct {
	StartLn, StartCol int
	EndLn, EndCol     int
}

// TextPositionFromRange computes the position spanning two positions.
func TextPositionFromRange(start, end *TextPosition) *TextPosition {
	return &TextPosition{
		StartLn:  start.StartLn,
		StartCol: start.StartCol,
		EndLn:    end.EndLn,
		EndCol:   end.EndCol,
	}
}
