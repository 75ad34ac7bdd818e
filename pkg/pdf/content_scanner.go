package pdf

import (
	"bytes"
	"strconv"
)

// pageFont is what the scanner knows about one font resource: its BaseFont
// name and, for CID fonts, the ToUnicode mapping that turns show-text codes
// back into text.
type pageFont struct {
	baseFont  string
	toUnicode *toUnicodeCMap
}

// contentScanner is a minimal PDF content stream interpreter for the pdfcpu
// backend. It tracks just enough text state (Tf, Td/TD/Tm/TL/T*, BT) to
// position the show-text operators (Tj, TJ, ', ") and ignores everything
// else. Strings are decoded through the font's ToUnicode CMap when one is
// present, byte-per-glyph otherwise.
type contentScanner struct {
	data  []byte
	pos   int
	fonts map[string]*pageFont
	page  *page

	font    string // current font resource name
	size    float64
	leading float64
	x, y    float64 // text position, PDF coordinates, y is the baseline
	lineX   float64 // start of the current text line
	lineY   float64
}

type opKind int

const (
	opNumber opKind = iota
	opName
	opString
	opArray
	opOperator
)

type operand struct {
	kind opKind
	name string
	num  float64
	str  []byte
	arr  []operand
}

// scanContent interprets a decoded content stream and appends the text it
// finds to the page
func scanContent(data []byte, fonts map[string]*pageFont, p *page) {
	s := &contentScanner{data: data, fonts: fonts, page: p}

	var stack []operand
	for {
		tok, ok := s.next()
		if !ok {
			break
		}
		if tok.kind == opOperator {
			s.apply(tok.name, stack)
			stack = stack[:0]
			continue
		}
		stack = append(stack, tok)
		// runaway operand sequences mean we lost sync; drop them
		if len(stack) > 64 {
			stack = stack[:0]
		}
	}
}

// apply executes one operator against the collected operands
func (s *contentScanner) apply(op string, args []operand) {
	switch op {
	case "BT":
		s.lineX, s.lineY = 0, 0
		s.x, s.y = 0, 0
	case "Tf":
		if len(args) >= 2 {
			s.font = args[len(args)-2].name
			s.size = args[len(args)-1].num
		}
	case "TL":
		if len(args) >= 1 {
			s.leading = args[len(args)-1].num
		}
	case "Td", "TD":
		if len(args) >= 2 {
			tx, ty := args[len(args)-2].num, args[len(args)-1].num
			if op == "TD" {
				s.leading = -ty
			}
			s.lineX += tx
			s.lineY += ty
			s.x, s.y = s.lineX, s.lineY
		}
	case "Tm":
		if len(args) >= 6 {
			// translation only; scale and rotation are ignored
			s.lineX = args[len(args)-2].num
			s.lineY = args[len(args)-1].num
			s.x, s.y = s.lineX, s.lineY
		}
	case "T*":
		s.newline()
	case "Tj":
		if len(args) >= 1 {
			s.show(args[len(args)-1].str)
		}
	case "'":
		if len(args) >= 1 {
			s.newline()
			s.show(args[len(args)-1].str)
		}
	case "\"":
		if len(args) >= 3 {
			s.newline()
			s.show(args[len(args)-1].str)
		}
	case "TJ":
		if len(args) >= 1 && args[len(args)-1].kind == opArray {
			for _, el := range args[len(args)-1].arr {
				switch el.kind {
				case opString:
					s.show(el.str)
				case opNumber:
					s.x -= el.num / 1000 * s.size
				}
			}
		}
	}
}

func (s *contentScanner) newline() {
	s.lineY -= s.leading
	s.x, s.y = s.lineX, s.lineY
}

// show records one shown string at the current text position. Glyph metrics
// are unavailable here, so advance by half an em per glyph.
func (s *contentScanner) show(raw []byte) {
	if len(raw) == 0 {
		return
	}

	font := s.font
	var cmap *toUnicodeCMap
	if f, ok := s.fonts[s.font]; ok && f != nil {
		if f.baseFont != "" {
			font = f.baseFont
		}
		cmap = f.toUnicode
	}

	var text string
	if cmap != nil {
		text = cmap.decode(raw)
	} else {
		runes := make([]rune, len(raw))
		for i, b := range raw {
			runes[i] = rune(b)
		}
		text = string(runes)
	}
	if text == "" {
		return
	}

	w := 0.5 * s.size * float64(len([]rune(text)))
	s.page.addTextItem(text, font, s.size, s.x, s.y, w)
	s.x += w
}

// next returns the next operand or operator token
func (s *contentScanner) next() (operand, bool) {
	for {
		s.skipSpace()
		if s.pos >= len(s.data) {
			return operand{}, false
		}

		switch c := s.data[s.pos]; {
		case c == '(':
			return operand{kind: opString, str: s.readLiteralString()}, true
		case c == '<':
			if s.pos+1 < len(s.data) && s.data[s.pos+1] == '<' {
				s.pos += 2
				s.skipDict()
				continue
			}
			return operand{kind: opString, str: s.readHexString()}, true
		case c == '[':
			s.pos++
			return s.readArray(), true
		case c == '/':
			s.pos++
			return operand{kind: opName, name: s.readName()}, true
		case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
			return s.readNumber(), true
		case c == ']' || c == ')' || c == '>' || c == '{' || c == '}':
			// stray delimiter, resync
			s.pos++
			continue
		default:
			word := s.readWord()
			if word == "" {
				s.pos++
				continue
			}
			if word == "BI" {
				s.skipInlineImage()
				continue
			}
			return operand{kind: opOperator, name: word}, true
		}
	}
}

func (s *contentScanner) skipSpace() {
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c == '%' {
			for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
			continue
		}
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' && c != '\f' && c != 0 {
			return
		}
		s.pos++
	}
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isRegular(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return false
	}
	return !isDelimiter(c)
}

// readLiteralString reads a (...) string, handling nesting and escapes
func (s *contentScanner) readLiteralString() []byte {
	s.pos++ // consume '('
	var out []byte
	depth := 1

	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++
		switch c {
		case '\\':
			if s.pos >= len(s.data) {
				return out
			}
			e := s.data[s.pos]
			s.pos++
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '(', ')', '\\':
				out = append(out, e)
			case '\n':
				// line continuation
			case '\r':
				if s.pos < len(s.data) && s.data[s.pos] == '\n' {
					s.pos++
				}
			default:
				if e >= '0' && e <= '7' {
					v := int(e - '0')
					for i := 0; i < 2 && s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '7'; i++ {
						v = v*8 + int(s.data[s.pos]-'0')
						s.pos++
					}
					out = append(out, byte(v))
				} else {
					out = append(out, e)
				}
			}
		case '(':
			depth++
			out = append(out, c)
		case ')':
			depth--
			if depth == 0 {
				return out
			}
			out = append(out, c)
		default:
			out = append(out, c)
		}
	}
	return out
}

// readHexString reads a <...> string
func (s *contentScanner) readHexString() []byte {
	s.pos++ // consume '<'
	var digits []byte
	for s.pos < len(s.data) && s.data[s.pos] != '>' {
		c := s.data[s.pos]
		if isHexDigit(c) {
			digits = append(digits, c)
		}
		s.pos++
	}
	if s.pos < len(s.data) {
		s.pos++ // consume '>'
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}

	out := make([]byte, 0, len(digits)/2)
	for i := 0; i+1 < len(digits); i += 2 {
		out = append(out, hexVal(digits[i])<<4|hexVal(digits[i+1]))
	}
	return out
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// readArray reads operands until the closing bracket
func (s *contentScanner) readArray() operand {
	var arr []operand
	for {
		s.skipSpace()
		if s.pos >= len(s.data) {
			break
		}
		if s.data[s.pos] == ']' {
			s.pos++
			break
		}
		tok, ok := s.next()
		if !ok {
			break
		}
		if tok.kind == opOperator {
			continue // malformed array content
		}
		arr = append(arr, tok)
	}
	return operand{kind: opArray, arr: arr}
}

// readName reads a name after the '/' has been consumed, decoding #xx escapes
func (s *contentScanner) readName() string {
	var out []byte
	for s.pos < len(s.data) && isRegular(s.data[s.pos]) {
		c := s.data[s.pos]
		if c == '#' && s.pos+2 < len(s.data) && isHexDigit(s.data[s.pos+1]) && isHexDigit(s.data[s.pos+2]) {
			out = append(out, hexVal(s.data[s.pos+1])<<4|hexVal(s.data[s.pos+2]))
			s.pos += 3
			continue
		}
		out = append(out, c)
		s.pos++
	}
	return string(out)
}

func (s *contentScanner) readNumber() operand {
	start := s.pos
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9') {
			s.pos++
			continue
		}
		break
	}
	num, _ := strconv.ParseFloat(string(s.data[start:s.pos]), 64)
	return operand{kind: opNumber, num: num}
}

func (s *contentScanner) readWord() string {
	start := s.pos
	for s.pos < len(s.data) && isRegular(s.data[s.pos]) {
		s.pos++
	}
	return string(s.data[start:s.pos])
}

// skipDict discards an inline dictionary, respecting nesting and strings
func (s *contentScanner) skipDict() {
	depth := 1
	for s.pos < len(s.data) && depth > 0 {
		switch c := s.data[s.pos]; {
		case c == '(':
			s.readLiteralString()
		case c == '<' && s.pos+1 < len(s.data) && s.data[s.pos+1] == '<':
			depth++
			s.pos += 2
		case c == '>' && s.pos+1 < len(s.data) && s.data[s.pos+1] == '>':
			depth--
			s.pos += 2
		default:
			s.pos++
		}
	}
}

// skipInlineImage skips BI ... ID ... EI image data
func (s *contentScanner) skipInlineImage() {
	for {
		idx := bytes.Index(s.data[s.pos:], []byte("EI"))
		if idx < 0 {
			s.pos = len(s.data)
			return
		}
		end := s.pos + idx
		// require whitespace before EI so binary data containing the
		// two bytes does not terminate the scan early
		if end == 0 || s.data[end-1] == ' ' || s.data[end-1] == '\n' || s.data[end-1] == '\r' || s.data[end-1] == '\t' {
			s.pos = end + 2
			return
		}
		s.pos = end + 2
	}
}
