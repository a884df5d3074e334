package manifest

import (
	"sort"
	"unicode/utf8"
)

// Location is a one-based (line, column) position within a manifest's
// source text, plus the raw byte cursor it was derived from.
type Location struct {
	Line   int
	Column int
	Cursor int
}

// lineIndex converts byte cursor offsets into one-based line/column
// locations, adapted from this codebase's grammar-source LineIndex: it
// stores the 0-based start offset of every line and binary searches it.
// Construction is O(n) over the input and is meant to be built once per
// manifest file.
type lineIndex struct {
	input     []byte
	lineStart []int
}

func newLineIndex(input []byte) *lineIndex {
	lineStart := make([]int, 1, 64)
	lineStart[0] = 0
	for i, b := range input {
		if b == '\n' {
			lineStart = append(lineStart, i+1)
		}
	}
	return &lineIndex{input: input, lineStart: lineStart}
}

func (li *lineIndex) locationAt(cursor int) Location {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(li.input) {
		cursor = len(li.input)
	}
	lineIdx := sort.Search(len(li.lineStart), func(i int) bool {
		return li.lineStart[i] > cursor
	}) - 1
	if lineIdx < 0 {
		lineIdx = 0
	}
	lineStart := li.lineStart[lineIdx]
	col := utf8.RuneCount(li.input[lineStart:cursor]) + 1
	return Location{Line: lineIdx + 1, Column: col, Cursor: cursor}
}

// line returns the raw text of the one-based line n, for printing the
// offending line and a caret beneath it in a parse error.
func (li *lineIndex) line(n int) string {
	if n < 1 || n > len(li.lineStart) {
		return ""
	}
	start := li.lineStart[n-1]
	end := len(li.input)
	if n < len(li.lineStart) {
		end = li.lineStart[n] - 1 // exclude the trailing '\n'
	}
	if end < start {
		end = start
	}
	return string(li.input[start:end])
}
