// Package source models the single source file a Lumen program is read
// from: its raw bytes, byte-offset spans into it, and 1-based line/column
// positions for error reporting.
package source

import "fortio.org/safecast"

// Span is a half-open byte range [Start, End) into a File.
type Span struct {
	Start uint32
	End   uint32
}

// Len reports the number of bytes covered by the span.
func (s Span) Len() uint32 { return s.End - s.Start }

// Position is a human-facing, 1-based line/column pair.
type Position struct {
	Line uint32
	Col  uint32
}

// File holds the full text of the program being interpreted along with a
// precomputed index of line-start offsets, so resolving a byte offset to a
// line/column pair walks that index rather than rescanning the content.
type File struct {
	Name    string
	Content []byte
	lineIdx []uint32 // offset of the first byte of each line after line 1
}

// New builds a File and its line index for content.
func New(name string, content []byte) *File {
	f := &File{Name: name, Content: content}
	for i, b := range content {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i + 1)
			if err != nil {
				continue
			}
			f.lineIdx = append(f.lineIdx, off)
		}
	}
	return f
}

// Resolve turns a byte offset into a 1-based Position.
func (f *File) Resolve(offset uint32) Position {
	line := uint32(1)
	lineStart := uint32(0)
	for _, start := range f.lineIdx {
		if start > offset {
			break
		}
		line++
		lineStart = start
	}
	col := offset - lineStart + 1
	return Position{Line: line, Col: col}
}

// Line returns the raw text of the given 1-based line number, without its
// trailing newline. Used by the error reporter to print the offending
// source line and a caret pointer underneath it.
func (f *File) Line(n uint32) string {
	if n == 0 {
		return ""
	}
	var start uint32
	if n > 1 {
		if int(n-2) >= len(f.lineIdx) {
			return ""
		}
		start = f.lineIdx[n-2]
	}
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return ""
	}
	if int(n-1) < len(f.lineIdx) {
		end = f.lineIdx[n-1]
	}
	line := string(f.Content[start:end])
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}
