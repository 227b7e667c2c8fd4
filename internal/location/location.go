package location

import "fmt"

// Location identifies a source range: the file plus inclusive start and end
// positions. Lines are 1-based, columns are 0-based, matching the parser's
// conventions.
type Location struct {
	File        string
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// New builds a Location covering [startLine:startColumn, endLine:endColumn].
func New(file string, startLine, startColumn, endLine, endColumn int) Location {
	return Location{
		File:        file,
		StartLine:   startLine,
		StartColumn: startColumn,
		EndLine:     endLine,
		EndColumn:   endColumn,
	}
}

// IsZero reports whether the location carries no position information.
func (l Location) IsZero() bool {
	return l == Location{}
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.StartLine, l.StartColumn)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartColumn)
}
