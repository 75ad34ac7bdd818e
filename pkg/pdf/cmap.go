package pdf

import "unicode/utf16"

// toUnicodeCMap maps character codes from a font's show-text strings to
// Unicode text, built from the font's ToUnicode stream. Codes are treated as
// two bytes wide with a single-byte fallback, which covers the CMaps CID
// fonts embed in practice.
type toUnicodeCMap struct {
	chars  map[uint16]string
	ranges []cmapRange
}

// cmapRange is one bfrange entry: a contiguous code interval mapped either
// onto consecutive code points starting at base, or onto an explicit
// destination per code.
type cmapRange struct {
	lo, hi uint16
	base   rune
	dsts   []string
}

// parseToUnicodeCMap extracts the bfchar and bfrange mappings from a decoded
// ToUnicode stream. CMaps share the content stream token syntax, so the same
// lexer drives both; anything outside begin/end blocks is ignored. A CMap
// with no usable mappings returns nil.
func parseToUnicodeCMap(data []byte) *toUnicodeCMap {
	cm := &toUnicodeCMap{chars: map[uint16]string{}}
	s := &contentScanner{data: data}

	var stack []operand
	for {
		tok, ok := s.next()
		if !ok {
			break
		}
		if tok.kind != opOperator {
			stack = append(stack, tok)
			// blocks hold at most 100 mappings (300 operands for bfrange)
			if len(stack) > 512 {
				stack = stack[:0]
			}
			continue
		}

		switch tok.name {
		case "endbfchar":
			for i := 0; i+1 < len(stack); i += 2 {
				src, srcOK := codeOf(stack[i])
				dst, dstOK := textOf(stack[i+1])
				if srcOK && dstOK {
					cm.chars[src] = dst
				}
			}
		case "endbfrange":
			for i := 0; i+2 < len(stack); i += 3 {
				lo, loOK := codeOf(stack[i])
				hi, hiOK := codeOf(stack[i+1])
				if !loOK || !hiOK || hi < lo {
					continue
				}
				switch dst := stack[i+2]; dst.kind {
				case opString:
					if text, ok := textOf(dst); ok {
						runes := []rune(text)
						if len(runes) > 0 {
							cm.ranges = append(cm.ranges, cmapRange{lo: lo, hi: hi, base: runes[0]})
						}
					}
				case opArray:
					dsts := make([]string, 0, len(dst.arr))
					for _, el := range dst.arr {
						text, _ := textOf(el)
						dsts = append(dsts, text)
					}
					cm.ranges = append(cm.ranges, cmapRange{lo: lo, hi: hi, dsts: dsts})
				}
			}
		}
		stack = stack[:0]
	}

	if len(cm.chars) == 0 && len(cm.ranges) == 0 {
		return nil
	}
	return cm
}

// codeOf interprets a hex-string operand as a character code
func codeOf(op operand) (uint16, bool) {
	if op.kind != opString || len(op.str) == 0 {
		return 0, false
	}
	if len(op.str) == 1 {
		return uint16(op.str[0]), true
	}
	return uint16(op.str[0])<<8 | uint16(op.str[1]), true
}

// textOf interprets a hex-string operand as UTF-16BE destination text
func textOf(op operand) (string, bool) {
	if op.kind != opString || len(op.str) == 0 {
		return "", false
	}
	units := make([]uint16, 0, len(op.str)/2)
	for i := 0; i+1 < len(op.str); i += 2 {
		units = append(units, uint16(op.str[i])<<8|uint16(op.str[i+1]))
	}
	if len(units) == 0 {
		// odd single byte, take it directly
		return string(rune(op.str[0])), true
	}
	return string(utf16.Decode(units)), true
}

// lookup resolves one code to its Unicode text
func (cm *toUnicodeCMap) lookup(code uint16) (string, bool) {
	if text, ok := cm.chars[code]; ok {
		return text, true
	}
	for _, r := range cm.ranges {
		if code < r.lo || code > r.hi {
			continue
		}
		offset := int(code - r.lo)
		if r.dsts != nil {
			if offset < len(r.dsts) && r.dsts[offset] != "" {
				return r.dsts[offset], true
			}
			return "", false
		}
		return string(r.base + rune(offset)), true
	}
	return "", false
}

// decode converts a show-text string to Unicode text. Codes are consumed two
// bytes at a time; a pair with no mapping falls back to its individual bytes
// so simply encoded text behind a partial CMap still comes through.
func (cm *toUnicodeCMap) decode(raw []byte) string {
	var out []rune
	for i := 0; i < len(raw); i += 2 {
		if i+1 >= len(raw) {
			if text, ok := cm.lookup(uint16(raw[i])); ok {
				out = append(out, []rune(text)...)
			} else {
				out = append(out, rune(raw[i]))
			}
			break
		}

		code := uint16(raw[i])<<8 | uint16(raw[i+1])
		if text, ok := cm.lookup(code); ok {
			out = append(out, []rune(text)...)
			continue
		}
		for _, b := range raw[i : i+2] {
			if text, ok := cm.lookup(uint16(b)); ok {
				out = append(out, []rune(text)...)
			} else {
				out = append(out, rune(b))
			}
		}
	}
	return string(out)
}
