// Package markers checks the template-marker comments that an external
// cleanup tool consumes. It only reports where the markers are and whether
// they are well formed; it never rewrites source.
package markers

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

// Marker comment texts, as written after "//".
const (
	BlockStart = "TEMPLATE-ONLY:START"
	BlockEnd   = "TEMPLATE-ONLY:END"
	LineTag    = "@template-only"
)

var (
	ErrNestedBlock        = errors.New("block start inside an open block")
	ErrStrayEnd           = errors.New("block end without a start")
	ErrUnterminatedBlock  = errors.New("block start without an end")
	ErrDanglingLineMarker = errors.New("line marker not followed by a top-level declaration")
)

// Block is a START/END pair. Lines are 1-based.
type Block struct {
	StartLine int
	EndLine   int
}

// LineMarker is a single-line marker and the declaration that follows it.
type LineMarker struct {
	Line int
	Decl string
}

// Report lists every marker found in a file, in source order.
type Report struct {
	Blocks []Block
	Lines  []LineMarker
}

// Check parses src as Go and validates its markers. filename is only used in
// error messages.
func Check(filename string, src []byte) (*Report, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	decls := make(map[int]string, len(file.Decls))
	for _, d := range file.Decls {
		decls[fset.Position(d.Pos()).Line] = declName(d)
	}

	report := &Report{}
	open := 0
	for _, group := range file.Comments {
		for _, c := range group.List {
			if !strings.HasPrefix(c.Text, "//") {
				continue
			}
			line := fset.Position(c.Slash).Line
			switch strings.TrimSpace(strings.TrimPrefix(c.Text, "//")) {
			case BlockStart:
				if open != 0 {
					return nil, fmt.Errorf("%s:%d: %w (opened at line %d)", filename, line, ErrNestedBlock, open)
				}
				open = line
			case BlockEnd:
				if open == 0 {
					return nil, fmt.Errorf("%s:%d: %w", filename, line, ErrStrayEnd)
				}
				report.Blocks = append(report.Blocks, Block{StartLine: open, EndLine: line})
				open = 0
			case LineTag:
				name, ok := decls[line+1]
				if !ok {
					return nil, fmt.Errorf("%s:%d: %w", filename, line, ErrDanglingLineMarker)
				}
				report.Lines = append(report.Lines, LineMarker{Line: line, Decl: name})
			}
		}
	}
	if open != 0 {
		return nil, fmt.Errorf("%s:%d: %w", filename, open, ErrUnterminatedBlock)
	}
	return report, nil
}

func declName(d ast.Decl) string {
	switch d := d.(type) {
	case *ast.FuncDecl:
		return d.Name.Name
	case *ast.GenDecl:
		if len(d.Specs) == 0 {
			return d.Tok.String()
		}
		switch s := d.Specs[0].(type) {
		case *ast.TypeSpec:
			return s.Name.Name
		case *ast.ValueSpec:
			return s.Names[0].Name
		case *ast.ImportSpec:
			return s.Path.Value
		}
	}
	return ""
}
