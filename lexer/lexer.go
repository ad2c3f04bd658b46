// Package lexer scans a template source string into an ordered
// sequence of typed Blocks, tracking line numbers as it goes. It knows
// nothing about directive grammar or includes -- that is the parser
// package's job -- it only finds delimiter boundaries and classifies
// what is between them.
package lexer

import (
	"strings"

	"github.com/codingersid/gottl/gottlerrors"
)

// BlockKind classifies a Block.
type BlockKind int

const (
	Text BlockKind = iota
	Statement
	Expression
	Member
	Directive
)

func (k BlockKind) String() string {
	switch k {
	case Text:
		return "Text"
	case Statement:
		return "Statement"
	case Expression:
		return "Expression"
	case Member:
		return "Member"
	case Directive:
		return "Directive"
	default:
		return "Unknown"
	}
}

// Block is a lexical fragment of template source. Blocks are immutable
// once produced by Tokenize.
type Block struct {
	Kind      BlockKind
	Text      string // raw slice; for non-Text kinds, delimiters stripped and surrounding whitespace trimmed
	Name      string // owning template name, propagated across includes
	StartLine int    // 1-based line in the owning template
}

const (
	openDelim  = "<#"
	closeDelim = "#>"
)

// Tokenize scans input into an ordered sequence of Blocks. name is
// stamped onto every Block as its owning template, for diagnostics that
// survive include-splicing.
func Tokenize(name, input string) ([]Block, error) {
	var blocks []Block
	line := 1
	pos := 0

	flushText := func(text string, startLine int) {
		if text == "" {
			return
		}
		if n := len(blocks); n > 0 && blocks[n-1].Kind == Text {
			blocks[n-1].Text += text
			return
		}
		blocks = append(blocks, Block{Kind: Text, Text: text, Name: name, StartLine: startLine})
	}

	countLines := func(s string) int {
		// Count \n occurrences; \r\n is handled because \r is not
		// counted, only \n advances the line, so CRLF and LF both
		// advance exactly once per line break.
		return strings.Count(s, "\n")
	}

	for pos < len(input) {
		idx := strings.Index(input[pos:], openDelim)
		if idx == -1 {
			flushText(input[pos:], line)
			break
		}
		// Text before the delimiter.
		textChunk := input[pos : pos+idx]
		textStartLine := line
		line += countLines(textChunk)
		flushText(textChunk, textStartLine)

		delimLine := line
		afterOpen := pos + idx + len(openDelim)

		var kind BlockKind
		bodyStart := afterOpen
		switch {
		case strings.HasPrefix(input[afterOpen:], "@"):
			kind = Directive
			bodyStart = afterOpen + 1
		case strings.HasPrefix(input[afterOpen:], "+"):
			kind = Member
			bodyStart = afterOpen + 1
		case strings.HasPrefix(input[afterOpen:], "="):
			kind = Expression
			bodyStart = afterOpen + 1
		default:
			kind = Statement
		}

		closeIdx := strings.Index(input[bodyStart:], closeDelim)
		if closeIdx == -1 {
			return nil, &gottlerrors.ParseError{
				Location: gottlerrors.Location{Template: name, Line: delimLine},
				Message:  "unterminated delimiter",
			}
		}

		body := input[bodyStart : bodyStart+closeIdx]
		blocks = append(blocks, Block{
			Kind:      kind,
			Text:      strings.TrimSpace(body),
			Name:      name,
			StartLine: delimLine,
		})

		line += countLines(input[afterOpen : bodyStart+closeIdx+len(closeDelim)])
		pos = bodyStart + closeIdx + len(closeDelim)
	}

	return blocks, nil
}
