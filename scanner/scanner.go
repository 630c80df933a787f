package scanner

// Scanner extracts comments and logical-line structure from Python source.
//
// It is not a Python tokenizer. It recognizes exactly the constructs that
// decide where a comment starts and which statement it belongs to:
// - string literals (single, double, and triple quoted, with escapes)
// - bracket nesting, which joins physical lines into one logical line
// - backslash line continuations
// Everything else is opaque bytes.

// Comment is a single source comment, from the hash marker to the end of
// its physical line.
type Comment struct {
	Text     string   // Comment text including the hash, excluding the line terminator
	Pos      Position // Position of the hash
	Span     Span     // Byte range of the comment within the source
	StmtLine int      // First line of the enclosing logical statement, or Pos.Line
}

// Scanner scans source bytes in a single pass with no backtracking.
type Scanner struct {
	source   []byte
	filename string
	pos      int // Current byte position
	line     int // Current line (1-indexed)
	column   int // Current column (1-indexed)

	depth    int // Open bracket nesting depth
	stmtLine int // First line of the open logical statement, 0 when none
}

// New creates a scanner for the given source.
func New(filename string, source []byte) *Scanner {
	return &Scanner{
		source:   source,
		filename: filename,
		line:     1,
		column:   1,
	}
}

// Scan scans the entire source and returns its comments in source order.
// Malformed input never fails: unterminated strings run to the end of the
// input and unbalanced closing brackets are ignored.
func (s *Scanner) Scan() []Comment {
	var comments []Comment

	for s.pos < len(s.source) {
		ch := s.source[s.pos]

		switch {
		case ch == '#':
			comments = append(comments, s.scanComment())

		case ch == '\'' || ch == '"':
			s.openStatement()
			s.scanString(ch)

		case ch == '\n':
			if s.depth == 0 {
				s.stmtLine = 0
			}
			s.advance()

		case ch == ' ' || ch == '\t' || ch == '\r':
			s.advance()

		case ch == '\\':
			// Line continuation keeps the statement open across the newline.
			s.openStatement()
			s.advance()
			if s.peek() == '\r' {
				s.advance()
			}
			if s.peek() == '\n' {
				s.advance()
			}

		case ch == '(' || ch == '[' || ch == '{':
			s.openStatement()
			s.depth++
			s.advance()

		case ch == ')' || ch == ']' || ch == '}':
			s.openStatement()
			if s.depth > 0 {
				s.depth--
			}
			s.advance()

		default:
			s.openStatement()
			s.advance()
		}
	}

	return comments
}

// scanComment scans from the hash to the end of the physical line.
func (s *Scanner) scanComment() Comment {
	start := s.pos
	startLine := s.line
	startCol := s.column

	for s.pos < len(s.source) && s.source[s.pos] != '\n' {
		s.advance()
	}

	end := s.pos
	if end > start && s.source[end-1] == '\r' {
		end--
	}

	stmtLine := s.stmtLine
	if stmtLine == 0 {
		stmtLine = startLine
	}

	return Comment{
		Text:     string(s.source[start:end]),
		Pos:      Position{Filename: s.filename, Offset: start, Line: startLine, Column: startCol},
		Span:     Span{Start: start, End: end},
		StmtLine: stmtLine,
	}
}

// scanString consumes a string literal opened by quote. Triple-quoted
// strings span physical lines; single-quoted ones end at an unescaped
// newline so that a broken literal does not swallow the rest of the file.
func (s *Scanner) scanString(quote byte) {
	if s.pos+2 < len(s.source) && s.source[s.pos+1] == quote && s.source[s.pos+2] == quote {
		s.advance()
		s.advance()
		s.advance()
		s.scanTripleString(quote)
		return
	}

	s.advance() // opening quote

	for s.pos < len(s.source) {
		ch := s.source[s.pos]
		if ch == quote {
			s.advance()
			return
		}
		if ch == '\n' {
			// Unterminated single-line string; the newline stays for the
			// main loop so logical-line tracking sees it.
			return
		}
		if ch == '\\' && s.pos+1 < len(s.source) {
			s.advance()
		}
		s.advance()
	}
}

// scanTripleString consumes until the matching triple quote or end of input.
func (s *Scanner) scanTripleString(quote byte) {
	for s.pos < len(s.source) {
		ch := s.source[s.pos]
		if ch == quote && s.pos+2 < len(s.source) && s.source[s.pos+1] == quote && s.source[s.pos+2] == quote {
			s.advance()
			s.advance()
			s.advance()
			return
		}
		if ch == '\\' && s.pos+1 < len(s.source) {
			s.advance()
		}
		s.advance()
	}
}

// openStatement marks the current line as the start of a logical statement
// unless one is already open.
func (s *Scanner) openStatement() {
	if s.stmtLine == 0 {
		s.stmtLine = s.line
	}
}

func (s *Scanner) peek() byte {
	if s.pos >= len(s.source) {
		return 0
	}
	return s.source[s.pos]
}

func (s *Scanner) advance() byte {
	if s.pos >= len(s.source) {
		return 0
	}
	ch := s.source[s.pos]
	s.pos++
	if ch == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return ch
}
