package lex

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/orchid-lang/orchid/intern"
)

// Error categories for the lexer (§7: BadNumber, UnterminatedString,
// UnbalancedBracket is raised by the tree parser, not here).
type Error struct {
	Kind string // "BadNumber", "UnterminatedString", "BadRuleHeader"
	Span [2]int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex: %s at %v: %s", e.Kind, e.Span, e.Msg)
}

const reservedChars = ":\\@\"'(){}[],.$"

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isReserved(r rune) bool {
	return strings.ContainsRune(reservedChars, r)
}

// scanner is the full hand-written lexer (§4.B), parameterized by a
// per-file OperatorSet so it can perform the greedy-longest-match split of
// symbolic runs the spec requires. It cannot be a pre-compiled
// lexmachine.Lexer (see doc.go); the preparse pass (preparse.go) is.
type scanner struct {
	in   *intern.Interner
	src  []byte
	pos  int
	ops  OperatorSet
	toks []Token
}

// Scan tokenizes src against the given operator set (§4.B, §4.D layer 3).
func Scan(in *intern.Interner, src []byte, ops OperatorSet) ([]Token, error) {
	s := &scanner{in: in, src: src, ops: ops}
	for s.pos < len(s.src) {
		if err := s.step(); err != nil {
			return s.toks, err
		}
	}
	return s.toks, nil
}

func (s *scanner) rest() string { return string(s.src[s.pos:]) }

func (s *scanner) peek() (rune, int) {
	if s.pos >= len(s.src) {
		return 0, 0
	}
	return utf8.DecodeRune(s.src[s.pos:])
}

func (s *scanner) emit(t Token) {
	s.toks = append(s.toks, t)
}

func (s *scanner) step() error {
	start := s.pos
	r, w := s.peek()

	switch {
	case r == ' ' || r == '\t' || r == '\r' || r == '\n':
		s.pos += w
		return nil
	case r == '-' && strings.HasPrefix(s.rest(), "--["):
		return s.blockComment(start)
	case r == '-' && strings.HasPrefix(s.rest(), "--"):
		s.skipLineComment()
		return nil
	case r == '"':
		return s.stringLiteral(start)
	case r == '\'':
		return s.charLiteral(start)
	case unicode.IsDigit(r):
		return s.numberLiteral(start)
	case r == '(':
		s.pos += w
		s.emit(Token{Kind: TLParen, Span: [2]int{start, s.pos}})
		return nil
	case r == ')':
		s.pos += w
		s.emit(Token{Kind: TRParen, Span: [2]int{start, s.pos}})
		return nil
	case r == '[':
		s.pos += w
		s.emit(Token{Kind: TLBracket, Span: [2]int{start, s.pos}})
		return nil
	case r == ']':
		s.pos += w
		s.emit(Token{Kind: TRBracket, Span: [2]int{start, s.pos}})
		return nil
	case r == '{':
		s.pos += w
		s.emit(Token{Kind: TLBrace, Span: [2]int{start, s.pos}})
		return nil
	case r == '}':
		s.pos += w
		s.emit(Token{Kind: TRBrace, Span: [2]int{start, s.pos}})
		return nil
	case r == '\\':
		s.pos += w
		s.emit(Token{Kind: TBackslash, Span: [2]int{start, s.pos}})
		return nil
	case r == ':':
		return s.colon(start)
	case strings.HasPrefix(s.rest(), "...$"):
		return s.placeholder(start, PfxVecOne, 4)
	case strings.HasPrefix(s.rest(), "..$"):
		return s.placeholder(start, PfxVecZero, 3)
	case r == '$':
		return s.placeholder(start, PfxScalar, 1)
	case r == '.':
		return s.dotFamily(start)
	case r == ',':
		s.pos += w
		s.emitName(",", start)
		return nil
	case isIdentStart(r):
		return s.identifier(start)
	case r == '=':
		return s.equalsFamily(start)
	default:
		return s.symbolicRun(start)
	}
}

func (s *scanner) emitName(text string, start int) {
	tok := in(s.in, text)
	s.emit(Token{Kind: TName, Text: text, Name: tok, Span: [2]int{start, s.pos}})
}

func in(interner *intern.Interner, text string) intern.Tok {
	return interner.InternString(intern.KindName, text)
}

func (s *scanner) skipLineComment() {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
}

func (s *scanner) blockComment(start int) error {
	s.pos += 3 // consume "--["
	for {
		idx := strings.Index(string(s.src[s.pos:]), "]--")
		if idx < 0 {
			return &Error{Kind: "UnterminatedString", Span: [2]int{start, len(s.src)}, Msg: "unterminated block comment"}
		}
		s.pos += idx + 3
		return nil
	}
}

func (s *scanner) colon(start int) error {
	if strings.HasPrefix(s.rest(), "::") {
		s.pos += 2
		s.emit(Token{Kind: TColonColon, Span: [2]int{start, s.pos}})
		return nil
	}
	s.pos++ // lone ':' (the parser reads it as the first half of ':=')
	s.emit(Token{Kind: TColonColon, Text: ":", Span: [2]int{start, s.pos}})
	return nil
}

func (s *scanner) dotFamily(start int) error {
	n := 1
	for n < 3 && s.pos+n < len(s.src) && s.src[s.pos+n] == '.' {
		n++
	}
	text := strings.Repeat(".", n)
	s.pos += n
	s.emitName(text, start)
	return nil
}

func (s *scanner) equalsFamily(start int) error {
	// Try the rule arrow =<float>=> first; fall back to a plain symbolic run.
	save := s.pos
	s.pos++ // consume '='
	numStart := s.pos
	if ok := s.tryFloat(); ok {
		numText := string(s.src[numStart:s.pos])
		if strings.HasPrefix(s.rest(), "=>") {
			prio, err := parseNumberText(numText)
			if err != nil {
				return &Error{Kind: "BadRuleHeader", Span: [2]int{start, s.pos}, Msg: err.Error()}
			}
			s.pos += 2
			s.emit(Token{Kind: TRuleArrow, Priority: prio.asFloat(), Span: [2]int{start, s.pos}})
			return nil
		}
	}
	s.pos = save
	return s.symbolicRun(start)
}

// tryFloat advances s.pos over a number-shaped run (as consumed by
// numberLiteral's scanning, without the literal's semantic parse) and
// reports whether anything was consumed.
func (s *scanner) tryFloat() bool {
	start := s.pos
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '.' || c == '+' || c == '-' {
			if (c == '+' || c == '-') && s.pos > start {
				prev := s.src[s.pos-1]
				if prev != 'p' && prev != 'P' {
					break
				}
			}
			s.pos++
			continue
		}
		break
	}
	return s.pos > start
}

func (s *scanner) placeholder(start int, pfx PlaceholderPrefix, skip int) error {
	s.pos += skip
	nameStart := s.pos
	for s.pos < len(s.src) {
		r, w := utf8.DecodeRune(s.src[s.pos:])
		if !isIdentContinue(r) {
			break
		}
		s.pos += w
	}
	if s.pos == nameStart {
		return &Error{Kind: "BadRuleHeader", Span: [2]int{start, s.pos}, Msg: "placeholder missing name"}
	}
	name := string(s.src[nameStart:s.pos])
	prio := 0
	if s.pos < len(s.src) && s.src[s.pos] == ':' {
		s.pos++
		digStart := s.pos
		for s.pos < len(s.src) && s.src[s.pos] >= '0' && s.src[s.pos] <= '9' {
			s.pos++
		}
		if s.pos == digStart {
			return &Error{Kind: "BadRuleHeader", Span: [2]int{start, s.pos}, Msg: "expected growth priority digits after ':'"}
		}
		n, _ := strconv.Atoi(string(s.src[digStart:s.pos]))
		prio = n
	}
	s.emit(Token{
		Kind:            TPlaceholder,
		PlaceholderPfx:  pfx,
		PlaceholderName: name,
		PlaceholderPrio: prio,
		Span:            [2]int{start, s.pos},
	})
	return nil
}

func (s *scanner) identifier(start int) error {
	for s.pos < len(s.src) {
		r, w := utf8.DecodeRune(s.src[s.pos:])
		if !isIdentContinue(r) {
			break
		}
		s.pos += w
	}
	text := string(s.src[start:s.pos])
	switch text {
	case "import":
		s.emit(Token{Kind: TImport, Text: text, Span: [2]int{start, s.pos}})
	case "export":
		s.emit(Token{Kind: TExport, Text: text, Span: [2]int{start, s.pos}})
	case "namespace":
		s.emit(Token{Kind: TNamespace, Text: text, Span: [2]int{start, s.pos}})
	case "const":
		s.emit(Token{Kind: TConst, Text: text, Span: [2]int{start, s.pos}})
	case "macro":
		s.emit(Token{Kind: TMacro, Text: text, Span: [2]int{start, s.pos}})
	default:
		s.emitName(text, start)
	}
	return nil
}

// symbolicRun consumes the maximal run of non-reserved, non-whitespace,
// non-digit-leading characters, then applies greedy-longest-match against
// the operator set, splitting it into one TName per matched operator. If
// no operator matches at some position, the remainder of the run becomes
// a single TName (§4.B: "remaining symbolic runs tokenize as a single
// name").
func (s *scanner) symbolicRun(start int) error {
	runStart := s.pos
	for s.pos < len(s.src) {
		r, w := utf8.DecodeRune(s.src[s.pos:])
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' || unicode.IsDigit(r) || isReserved(r) || isIdentStart(r) {
			break
		}
		s.pos += w
	}
	if s.pos == runStart {
		// Single reserved/unknown byte we don't otherwise special-case:
		// treat it as its own one-rune name so the lexer always makes
		// progress.
		_, w := utf8.DecodeRune(s.src[s.pos:])
		if w == 0 {
			w = 1
		}
		s.pos += w
		s.emitName(string(s.src[start:s.pos]), start)
		return nil
	}
	run := string(s.src[runStart:s.pos])
	off := runStart
	i := 0
	for i < len(run) {
		if op, ok := s.ops.LongestPrefix(run[i:]); ok && op != "" {
			s.emitName(op, off+i)
			i += len(op)
			continue
		}
		s.emitName(run[i:], off+i)
		i = len(run)
	}
	return nil
}

// --- Literals ---------------------------------------------------------

func (s *scanner) stringLiteral(start int) error {
	s.pos++ // opening quote
	var b strings.Builder
	for {
		if s.pos >= len(s.src) {
			return &Error{Kind: "UnterminatedString", Span: [2]int{start, s.pos}, Msg: "unterminated string literal"}
		}
		c := s.src[s.pos]
		if c == '"' {
			s.pos++
			break
		}
		if c == '\\' {
			r, n, err := s.decodeEscape(s.pos)
			if err != nil {
				return err
			}
			b.WriteRune(r)
			s.pos += n
			continue
		}
		r, w := utf8.DecodeRune(s.src[s.pos:])
		b.WriteRune(r)
		s.pos += w
	}
	text := b.String()
	tok := s.in.InternString(intern.KindString, text)
	s.emit(Token{Kind: TString, StrVal: text, Str: tok, Span: [2]int{start, s.pos}})
	return nil
}

func (s *scanner) charLiteral(start int) error {
	s.pos++ // opening quote
	if s.pos >= len(s.src) {
		return &Error{Kind: "UnterminatedString", Span: [2]int{start, s.pos}, Msg: "unterminated char literal"}
	}
	var r rune
	if s.src[s.pos] == '\\' {
		var n int
		var err error
		r, n, err = s.decodeEscape(s.pos)
		if err != nil {
			return err
		}
		s.pos += n
	} else {
		var w int
		r, w = utf8.DecodeRune(s.src[s.pos:])
		s.pos += w
	}
	if s.pos >= len(s.src) || s.src[s.pos] != '\'' {
		return &Error{Kind: "UnterminatedString", Span: [2]int{start, s.pos}, Msg: "unterminated char literal"}
	}
	s.pos++
	s.emit(Token{Kind: TChar, CharVal: r, Span: [2]int{start, s.pos}})
	return nil
}

// decodeEscape decodes a \-escape starting at index i (pointing at the
// backslash). It returns the decoded rune and the number of bytes
// consumed (including the backslash).
func (s *scanner) decodeEscape(i int) (rune, int, error) {
	if i+1 >= len(s.src) {
		return 0, 0, &Error{Kind: "UnterminatedString", Span: [2]int{i, i + 1}, Msg: "dangling escape"}
	}
	switch s.src[i+1] {
	case 'n':
		return '\n', 2, nil
	case 't':
		return '\t', 2, nil
	case 'r':
		return '\r', 2, nil
	case '\\':
		return '\\', 2, nil
	case '"':
		return '"', 2, nil
	case '\'':
		return '\'', 2, nil
	case 'u':
		if i+6 > len(s.src) {
			return 0, 0, &Error{Kind: "UnterminatedString", Span: [2]int{i, len(s.src)}, Msg: "short \\u escape"}
		}
		hex := string(s.src[i+2 : i+6])
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, 0, &Error{Kind: "UnterminatedString", Span: [2]int{i, i + 6}, Msg: "bad \\u escape: " + err.Error()}
		}
		return rune(v), 6, nil
	default:
		return 0, 0, &Error{Kind: "UnterminatedString", Span: [2]int{i, i + 2}, Msg: "unknown escape"}
	}
}

// numVal is the parsed result of a numeric literal: either an integer or a
// float, distinguished by usedFrac/usedExp per §4.B/§6 ("integers overflow
// into floats silently when the fractional or exponent parts are used").
type numVal struct {
	isInt  bool
	intVal uint64
	fltVal float64
}

func (n numVal) asFloat() float64 {
	if n.isInt {
		return float64(n.intVal)
	}
	return n.fltVal
}

func (s *scanner) numberLiteral(start int) error {
	base := 10
	digits := "0123456789"
	pos := s.pos
	if s.src[pos] == '0' && pos+1 < len(s.src) {
		switch s.src[pos+1] {
		case 'x', 'X':
			base, digits = 16, "0123456789abcdefABCDEF"
			pos += 2
		case 'o', 'O':
			base, digits = 8, "01234567"
			pos += 2
		case 'b', 'B':
			base, digits = 2, "01"
			pos += 2
		}
	}
	intStart := pos
	for pos < len(s.src) && strings.ContainsRune(digits, rune(s.src[pos])) {
		pos++
	}
	if pos == intStart {
		return &Error{Kind: "BadNumber", Span: [2]int{start, pos}, Msg: "expected digits"}
	}
	intText := string(s.src[intStart:pos])

	usedFrac, usedExp := false, false
	fracText := ""
	if pos < len(s.src) && s.src[pos] == '.' && pos+1 < len(s.src) && strings.ContainsRune(digits, rune(s.src[pos+1])) {
		usedFrac = true
		pos++
		fracStart := pos
		for pos < len(s.src) && strings.ContainsRune(digits, rune(s.src[pos])) {
			pos++
		}
		fracText = string(s.src[fracStart:pos])
	}

	expSign := 1
	expText := ""
	if pos < len(s.src) && (s.src[pos] == 'p' || s.src[pos] == 'P') {
		usedExp = true
		pos++
		if pos < len(s.src) && (s.src[pos] == '+' || s.src[pos] == '-') {
			if s.src[pos] == '-' {
				expSign = -1
			}
			pos++
		}
		expStart := pos
		for pos < len(s.src) && s.src[pos] >= '0' && s.src[pos] <= '9' {
			pos++
		}
		if pos == expStart {
			return &Error{Kind: "BadNumber", Span: [2]int{start, pos}, Msg: "expected exponent digits"}
		}
		expText = string(s.src[expStart:pos])
	}
	s.pos = pos

	if !usedFrac && !usedExp {
		v, err := strconv.ParseUint(intText, base, 64)
		if err != nil {
			// Overflow: silently promote to float, per §6.
			f, _ := parseBaseFloat(intText, "", 0, 1, base)
			s.emit(Token{Kind: TNumber, NumVal: f, Span: [2]int{start, s.pos}})
			return nil
		}
		s.emit(Token{Kind: TInt, IntVal: v, Span: [2]int{start, s.pos}})
		return nil
	}
	exp := 0
	if expText != "" {
		e, _ := strconv.Atoi(expText)
		exp = e * expSign
	}
	f, err := parseBaseFloat(intText, fracText, exp, 1, base)
	if err != nil {
		return &Error{Kind: "BadNumber", Span: [2]int{start, s.pos}, Msg: err.Error()}
	}
	s.emit(Token{Kind: TNumber, NumVal: f, Span: [2]int{start, s.pos}})
	return nil
}

// parseBaseFloat computes intText.fracText (in the given base) * base^exp.
func parseBaseFloat(intText, fracText string, exp int, sign int, base int) (float64, error) {
	var v float64
	for _, c := range intText {
		d, err := digitVal(c)
		if err != nil {
			return 0, err
		}
		v = v*float64(base) + float64(d)
	}
	frac := 0.0
	scale := 1.0
	for _, c := range fracText {
		d, err := digitVal(c)
		if err != nil {
			return 0, err
		}
		scale /= float64(base)
		frac += float64(d) * scale
	}
	v += frac
	v *= float64(sign)
	if exp != 0 {
		v *= pow(float64(base), exp)
	}
	return v, nil
}

func pow(base float64, exp int) float64 {
	if exp < 0 {
		return 1 / pow(base, -exp)
	}
	r := 1.0
	for i := 0; i < exp; i++ {
		r *= base
	}
	return r
}

func digitVal(c rune) (int, error) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), nil
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, nil
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, nil
	default:
		return 0, fmt.Errorf("bad digit %q", c)
	}
}

// parseNumberText parses the numeric literal found between '=' and '=>' in
// a rule arrow header, reusing the same base/fraction/exponent rules as
// numberLiteral by running a throwaway scanner over it.
func parseNumberText(text string) (numVal, error) {
	sub := &scanner{src: []byte(text)}
	if err := sub.numberLiteral(0); err != nil {
		return numVal{}, err
	}
	if len(sub.toks) != 1 {
		return numVal{}, fmt.Errorf("malformed rule priority %q", text)
	}
	t := sub.toks[0]
	if t.Kind == TInt {
		return numVal{isInt: true, intVal: t.IntVal}, nil
	}
	return numVal{fltVal: t.NumVal}, nil
}
