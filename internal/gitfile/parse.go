package gitfile

import (
	"fmt"
	"strings"
)

// entry records where a key is defined and its parsed value. When a key is
// defined more than once the last definition wins.
type entry struct {
	start int // index of the first line of the definition
	n     int // number of lines the definition spans
	value string
}

// sectionBlock records the most recent block of a section in the file,
// so new variables can be appended after its last entry.
type sectionBlock struct {
	header int
	last   int // last header or variable line belonging to the block
}

// document is the parsed, line-preserving form of a config file. Lines the
// parser does not need to understand (comments, blanks) pass through
// mutations untouched.
type document struct {
	lines    []string
	entries  map[string]entry
	sections map[string]sectionBlock
}

func parseDocument(lines []string) (*document, error) {
	d := &document{lines: lines}
	if err := d.reindex(); err != nil {
		return nil, err
	}
	return d, nil
}

// reindex rebuilds the key and section indexes from d.lines.
func (d *document) reindex() error {
	d.entries = make(map[string]entry)
	d.sections = make(map[string]sectionBlock)

	section := ""
	for i := 0; i < len(d.lines); i++ {
		t := strings.TrimSpace(stripCR(d.lines[i]))
		if t == "" || t[0] == '#' || t[0] == ';' {
			continue
		}

		if t[0] == '[' {
			prefix, err := parseSectionHeader(t)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
			section = prefix
			d.sections[prefix] = sectionBlock{header: i, last: i}
			continue
		}

		if section == "" {
			return fmt.Errorf("line %d: variable %q outside a section", i+1, t)
		}

		name, rest, hasValue, err := splitVariableLine(t)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}

		value := "true" // a name without "=" is an implicit boolean true
		consumed := 0
		if hasValue {
			value, consumed, err = parseValueLines(d.lines, i, rest)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
		}

		d.entries[section+"."+name] = entry{start: i, n: consumed + 1, value: value}
		blk := d.sections[section]
		blk.last = i + consumed
		d.sections[section] = blk
		i += consumed
	}
	return nil
}

// set writes key to the document: an existing definition is replaced in
// place, a new key is appended to its section, and a missing section is
// created at the end of the file.
func (d *document) set(key, rendered string) error {
	prefix, name, err := splitKey(key)
	if err != nil {
		return err
	}

	line := "\t" + name + " = " + rendered
	if e, ok := d.entries[prefix+"."+name]; ok {
		d.lines = append(d.lines[:e.start], append([]string{line}, d.lines[e.start+e.n:]...)...)
	} else if blk, ok := d.sections[prefix]; ok {
		at := blk.last + 1
		d.lines = append(d.lines[:at], append([]string{line}, d.lines[at:]...)...)
	} else {
		d.lines = append(d.lines, renderSectionHeader(prefix), line)
	}
	return d.reindex()
}

// delete removes the definition of key. Deleting a key that is not present
// is an error, unlike a defaulted read.
func (d *document) delete(key string) error {
	canonical, err := canonicalKey(key)
	if err != nil {
		return err
	}
	e, ok := d.entries[canonical]
	if !ok {
		return fmt.Errorf("key %q: %w", key, ErrKeyNotFound)
	}
	d.lines = append(d.lines[:e.start], d.lines[e.start+e.n:]...)
	return d.reindex()
}

func (d *document) render() string {
	if len(d.lines) == 0 {
		return ""
	}
	return strings.Join(d.lines, "\n") + "\n"
}

func (d *document) all() map[string]string {
	out := make(map[string]string, len(d.entries))
	for k, e := range d.entries {
		out[k] = e.value
	}
	return out
}

// parseSectionHeader parses "[name]" or `[name "subsection"]` into the
// canonical dotted prefix. The section name folds to lower case; the
// subsection keeps its case.
func parseSectionHeader(s string) (string, error) {
	pos := 1
	start := pos
	for pos < len(s) && isSectionNameChar(s[pos]) {
		pos++
	}
	name := strings.ToLower(s[start:pos])
	if name == "" {
		return "", fmt.Errorf("invalid section header %q", s)
	}

	if pos < len(s) && s[pos] == ']' {
		return name, checkHeaderTrailer(s[pos+1:], s)
	}

	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t') {
		pos++
	}
	if pos >= len(s) || s[pos] != '"' {
		return "", fmt.Errorf("invalid section header %q", s)
	}
	pos++

	var sub strings.Builder
	for {
		if pos >= len(s) {
			return "", fmt.Errorf("unterminated subsection in %q", s)
		}
		c := s[pos]
		if c == '"' {
			pos++
			break
		}
		if c == '\\' {
			// Git drops the backslash and keeps the escaped character.
			pos++
			if pos >= len(s) {
				return "", fmt.Errorf("unterminated subsection in %q", s)
			}
			c = s[pos]
		}
		sub.WriteByte(c)
		pos++
	}
	if pos >= len(s) || s[pos] != ']' {
		return "", fmt.Errorf("invalid section header %q", s)
	}
	return name + "." + sub.String(), checkHeaderTrailer(s[pos+1:], s)
}

func checkHeaderTrailer(rest, full string) error {
	rest = strings.TrimSpace(rest)
	if rest == "" || rest[0] == '#' || rest[0] == ';' {
		return nil
	}
	return fmt.Errorf("trailing characters after section header %q", full)
}

// splitVariableLine splits a trimmed variable line into its lower-cased
// name and the raw text after "=". hasValue is false for the bare-name
// form ("bare" meaning an implicit true).
func splitVariableLine(t string) (name, rest string, hasValue bool, err error) {
	if !isLetter(t[0]) {
		return "", "", false, fmt.Errorf("invalid variable name in %q", t)
	}
	pos := 0
	for pos < len(t) && isVariableNameChar(t[pos]) {
		pos++
	}
	name = strings.ToLower(t[:pos])
	for pos < len(t) && (t[pos] == ' ' || t[pos] == '\t') {
		pos++
	}
	if pos >= len(t) || t[pos] == '#' || t[pos] == ';' {
		return name, "", false, nil
	}
	if t[pos] != '=' {
		return "", "", false, fmt.Errorf("expected '=' in %q", t)
	}
	return name, t[pos+1:], true, nil
}

// parseValueLines parses the value text after "=" on line i, consuming
// continuation lines joined with a trailing backslash. It returns the
// parsed value and how many extra lines were consumed.
func parseValueLines(lines []string, i int, s string) (string, int, error) {
	var b strings.Builder
	consumed := 0
	inQuote := false
	quoteEnd := 0 // length of b at the close of the last quoted run
	s = strings.TrimLeft(stripCR(s), " \t")

	for pos := 0; ; {
		if pos >= len(s) {
			if inQuote {
				return "", 0, fmt.Errorf("unterminated quoted value")
			}
			break
		}
		c := s[pos]
		switch {
		case c == '\\' && pos == len(s)-1:
			// Line continuation: the backslash and newline are stripped.
			consumed++
			if i+consumed >= len(lines) {
				return "", 0, fmt.Errorf("value continuation past end of file")
			}
			s = stripCR(lines[i+consumed])
			pos = 0
		case c == '\\':
			pos++
			switch s[pos] {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'b':
				b.WriteByte('\b')
			default:
				return "", 0, fmt.Errorf("invalid escape %q in value", `\`+string(s[pos]))
			}
			pos++
		case c == '"':
			inQuote = !inQuote
			if !inQuote {
				quoteEnd = b.Len()
			}
			pos++
		case (c == '#' || c == ';') && !inQuote:
			pos = len(s) // trailing comment
		default:
			b.WriteByte(c)
			pos++
		}
	}

	out := b.String()
	trimmed := strings.TrimRight(out, " \t")
	if len(trimmed) < quoteEnd {
		trimmed = out[:quoteEnd]
	}
	return trimmed, consumed, nil
}

// splitKey breaks a dotted key into its canonical section prefix and
// variable name: "core.bare" -> ("core", "bare"), "branch.main.remote" ->
// ("branch.main", "remote"). Everything between the first and last dot is
// the subsection and keeps its case.
func splitKey(key string) (prefix, name string, err error) {
	first := strings.Index(key, ".")
	last := strings.LastIndex(key, ".")
	if first <= 0 || last >= len(key)-1 {
		return "", "", fmt.Errorf("invalid key %q: expected section.name", key)
	}

	section := strings.ToLower(key[:first])
	for i := 0; i < len(section); i++ {
		if !isSectionNameChar(section[i]) {
			return "", "", fmt.Errorf("invalid key %q: bad section name", key)
		}
	}

	name = strings.ToLower(key[last+1:])
	if !isLetter(name[0]) {
		return "", "", fmt.Errorf("invalid key %q: bad variable name", key)
	}
	for i := 1; i < len(name); i++ {
		if !isVariableNameChar(name[i]) {
			return "", "", fmt.Errorf("invalid key %q: bad variable name", key)
		}
	}

	if first == last {
		return section, name, nil
	}
	return section + "." + key[first+1:last], name, nil
}

// canonicalKey normalises a dotted key to the form used by the entry index.
func canonicalKey(key string) (string, error) {
	prefix, name, err := splitKey(key)
	if err != nil {
		return "", err
	}
	return prefix + "." + name, nil
}

func renderSectionHeader(prefix string) string {
	if i := strings.Index(prefix, "."); i >= 0 {
		sub := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(prefix[i+1:])
		return "[" + prefix[:i] + ` "` + sub + `"]`
	}
	return "[" + prefix + "]"
}

func stripCR(s string) string {
	return strings.TrimSuffix(s, "\r")
}

func isSectionNameChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '.'
}

func isVariableNameChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
