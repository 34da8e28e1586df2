// Package notation implements the single-line item grammar:
//
//	status id<priority> duration "title" {charts} [tags]
//	    [>>> rel[targets]...] [@@@ constraint...] [# comment] [### autocomment]
//
// Parse and Serialize are exact inverses over well-formed items. The parser
// is a hand-written scanner with one token of lookahead; every structural
// mismatch produces a *types.ParseError carrying the offending line.
package notation

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/mesh-intelligence/giantt/pkg/types"
)

// scanner walks a single line byte-wise, decoding runes where the grammar
// uses non-ASCII glyphs.
type scanner struct {
	src string
	pos int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) rest() string {
	return s.src[s.pos:]
}

func (s *scanner) skipSpace() {
	for !s.eof() && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
}

// readRune consumes and returns the next rune.
func (s *scanner) readRune() string {
	r, size := utf8.DecodeRuneInString(s.rest())
	if r == utf8.RuneError && size <= 1 {
		s.pos = len(s.src)
		return ""
	}
	s.pos += size
	return string(r)
}

// readToken consumes up to the next whitespace.
func (s *scanner) readToken() string {
	start := s.pos
	for !s.eof() && s.src[s.pos] != ' ' && s.src[s.pos] != '\t' {
		s.pos++
	}
	return s.src[start:s.pos]
}

// readJSONString consumes a JSON string literal starting at the current
// position and returns its decoded value.
func (s *scanner) readJSONString() (string, bool) {
	if s.eof() || s.src[s.pos] != '"' {
		return "", false
	}
	end := s.pos + 1
	for end < len(s.src) {
		switch s.src[end] {
		case '\\':
			end += 2
			continue
		case '"':
			var decoded string
			if err := json.Unmarshal([]byte(s.src[s.pos:end+1]), &decoded); err != nil {
				return "", false
			}
			s.pos = end + 1
			return decoded, true
		}
		end++
	}
	return "", false
}

// markers that terminate the tags segment.
const (
	markRelations  = ">>>"
	markConstraint = "@@@"
	markAuto       = "###"
	markComment    = "#"
)

func (s *scanner) atMarker(m string) bool {
	rest := s.rest()
	if !strings.HasPrefix(rest, m) {
		return false
	}
	// "#" must not shadow "###".
	if m == markComment && strings.HasPrefix(rest, markAuto) {
		return false
	}
	return true
}

// Parse decodes one item line. The occlude flag is positional (which file
// the line came from), so callers supply it.
func Parse(line string, occlude bool) (*types.Item, error) {
	trimmed := strings.TrimSpace(line)
	fail := func(msg string) (*types.Item, error) {
		return nil, &types.ParseError{Line: trimmed, Msg: msg}
	}
	if trimmed == "" {
		return fail("empty line")
	}

	s := &scanner{src: trimmed}

	status, ok := types.StatusFromGlyph(s.readRune())
	if !ok {
		return fail("unknown status glyph")
	}

	s.skipSpace()
	id, priority, err := splitIDPriority(s.readToken())
	if err != nil {
		return fail(err.Error())
	}

	s.skipSpace()
	durTok := s.readToken()
	if durTok == "" {
		return fail("missing duration")
	}
	duration, err := types.ParseDuration(durTok)
	if err != nil {
		return fail("invalid duration " + quote(durTok))
	}

	s.skipSpace()
	title, ok := s.readJSONString()
	if !ok {
		return fail("missing or invalid title string")
	}

	s.skipSpace()
	charts, err := parseCharts(s)
	if err != nil {
		return fail(err.Error())
	}

	s.skipSpace()
	tags, err := parseTags(s)
	if err != nil {
		return fail(err.Error())
	}

	relations := types.Relations{}
	if s.atMarker(markRelations) {
		s.pos += len(markRelations)
		if err := parseRelations(s, relations); err != nil {
			return fail(err.Error())
		}
	}

	var constraints []types.TimeConstraint
	if s.atMarker(markConstraint) {
		s.pos += len(markConstraint)
		constraints, err = parseConstraints(s)
		if err != nil {
			return fail(err.Error())
		}
	}

	userComment, autoComment := parseComments(s)

	s.skipSpace()
	if !s.eof() {
		return fail("unexpected trailing text " + quote(s.rest()))
	}

	return &types.Item{
		ID:          id,
		Title:       title,
		Status:      status,
		Priority:    priority,
		Duration:    duration,
		Charts:      charts,
		Tags:        tags,
		Relations:   relations,
		Constraints: constraints,
		UserComment: userComment,
		AutoComment: autoComment,
		Occlude:     occlude,
	}, nil
}

// splitIDPriority separates the id token from its trailing priority glyph.
func splitIDPriority(token string) (string, types.Priority, error) {
	if token == "" {
		return "", "", errInvalid("missing item id")
	}
	id := token
	priority := types.PriorityNeutral
	for _, glyph := range types.PriorityGlyphs() {
		if strings.HasSuffix(token, glyph) {
			id = strings.TrimSuffix(token, glyph)
			p, _ := types.PriorityFromGlyph(glyph)
			priority = p
			break
		}
	}
	if !validID(id) {
		return "", "", errInvalid("invalid item id " + quote(id))
	}
	return id, priority, nil
}

func parseCharts(s *scanner) ([]string, error) {
	if s.eof() || s.src[s.pos] != '{' {
		return nil, errInvalid("missing charts block")
	}
	s.pos++
	var charts []string
	for {
		s.skipSpace()
		if s.eof() {
			return nil, errInvalid("unterminated charts block")
		}
		if s.src[s.pos] == '}' {
			s.pos++
			return charts, nil
		}
		name, ok := s.readJSONString()
		if !ok {
			return nil, errInvalid("invalid chart name")
		}
		if name != "" {
			charts = append(charts, name)
		}
		s.skipSpace()
		if !s.eof() && s.src[s.pos] == ',' {
			s.pos++
		}
	}
}

func parseTags(s *scanner) ([]string, error) {
	rest := s.rest()
	end := len(rest)
	for _, m := range []string{markRelations, markConstraint, markComment} {
		if i := strings.Index(rest, m); i >= 0 && i < end {
			end = i
		}
	}
	segment := strings.TrimSpace(rest[:end])
	s.pos += end
	if segment == "" {
		return nil, nil
	}
	var tags []string
	for _, raw := range strings.Split(segment, ",") {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			continue
		}
		if !validTag(tag) {
			return nil, errInvalid("invalid tag " + quote(tag))
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func parseRelations(s *scanner, relations types.Relations) error {
	for {
		s.skipSpace()
		if s.eof() || s.atMarker(markConstraint) || s.atMarker(markAuto) || s.atMarker(markComment) {
			return nil
		}
		rel, ok := types.RelationFromSymbol(s.readRune())
		if !ok {
			return errInvalid("unknown relation symbol")
		}
		if s.eof() || s.src[s.pos] != '[' {
			return errInvalid("relation " + string(rel) + " missing target list")
		}
		s.pos++
		closeIdx := strings.IndexByte(s.rest(), ']')
		if closeIdx < 0 {
			return errInvalid("unterminated relation target list")
		}
		inner := s.src[s.pos : s.pos+closeIdx]
		s.pos += closeIdx + 1
		var targets []string
		for _, raw := range strings.Split(inner, ",") {
			target := strings.TrimSpace(raw)
			if target == "" {
				continue
			}
			if !validID(target) {
				return errInvalid("invalid relation target " + quote(target))
			}
			targets = append(targets, target)
		}
		if len(targets) == 0 {
			return errInvalid("relation " + string(rel) + " has no targets")
		}
		relations[rel] = targets
	}
}

func parseConstraints(s *scanner) ([]types.TimeConstraint, error) {
	rest := s.rest()
	end := len(rest)
	for _, m := range []string{markAuto, markComment} {
		if i := strings.Index(rest, " "+m); i >= 0 && i < end {
			end = i
		}
	}
	segment := strings.TrimSpace(rest[:end])
	s.pos += end
	if segment == "" {
		return nil, errInvalid("empty time constraint block")
	}
	var constraints []types.TimeConstraint
	for _, expr := range strings.Fields(segment) {
		tc, err := types.ParseTimeConstraint(expr)
		if err != nil {
			return nil, errInvalid("invalid time constraint " + quote(expr))
		}
		constraints = append(constraints, tc)
	}
	return constraints, nil
}

func parseComments(s *scanner) (string, string) {
	s.skipSpace()
	var user, auto string
	if s.atMarker(markComment) {
		s.pos += len(markComment)
		rest := s.rest()
		if i := strings.Index(rest, markAuto); i >= 0 {
			user = strings.TrimSpace(rest[:i])
			auto = strings.TrimSpace(rest[i+len(markAuto):])
		} else {
			user = strings.TrimSpace(rest)
		}
		s.pos = len(s.src)
		return user, auto
	}
	if s.atMarker(markAuto) {
		s.pos += len(markAuto)
		auto = strings.TrimSpace(s.rest())
		s.pos = len(s.src)
	}
	return user, auto
}

type parseDetail string

func (e parseDetail) Error() string { return string(e) }

func errInvalid(msg string) error { return parseDetail(msg) }

// validID reports whether the string is a non-empty run of ASCII letters,
// digits, and underscores.
func validID(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			continue
		}
		return false
	}
	return true
}

// validTag reports whether the string is a non-empty run of lowercase ASCII
// letters, digits, and underscores.
func validTag(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') {
			continue
		}
		return false
	}
	return true
}

// quote quotes a fragment for error messages without pulling the whole
// line in twice.
func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
