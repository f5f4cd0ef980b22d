package docxhtml

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStyleMapSyntax indicates an unparseable style map rule.
var ErrStyleMapSyntax = errors.New("invalid style map rule")

// Rule maps a source paragraph style name to a target HTML tag and
// optional class.
type Rule struct {
	StyleName string
	Tag       string
	Class     string
}

// open returns the opening tag for the rule.
func (r Rule) open() string {
	if r.Class != "" {
		return fmt.Sprintf(`<%s class="%s">`, r.Tag, escapeAttr(r.Class))
	}
	return "<" + r.Tag + ">"
}

// close returns the closing tag for the rule.
func (r Rule) close() string {
	return "</" + r.Tag + ">"
}

// ParseRules parses a style map document of the form
//
//	p[style-name='Quote'] => blockquote
//	p[style-name='Intense Quote'] => blockquote.intense
//
// one rule per line. Blank lines and lines starting with # are skipped.
// Parsing is strict: a malformed rule is an error at load time, not a
// silent no-op at convert time.
func ParseRules(text string) ([]Rule, error) {
	var rules []Rule
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rule, err := parseRule(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// parseRule parses one rule line.
func parseRule(line string) (Rule, error) {
	source, target, ok := strings.Cut(line, "=>")
	if !ok {
		return Rule{}, fmt.Errorf("%w: missing \"=>\": %q", ErrStyleMapSyntax, line)
	}
	source = strings.TrimSpace(source)
	target = strings.TrimSpace(target)

	styleName, err := parseSource(source)
	if err != nil {
		return Rule{}, err
	}

	tag, class, err := parseTarget(target)
	if err != nil {
		return Rule{}, err
	}

	return Rule{StyleName: styleName, Tag: tag, Class: class}, nil
}

// parseSource extracts the style name from p[style-name='X'].
func parseSource(source string) (string, error) {
	const prefix = "p[style-name='"
	const suffix = "']"
	if !strings.HasPrefix(source, prefix) || !strings.HasSuffix(source, suffix) {
		return "", fmt.Errorf("%w: source must match p[style-name='...']: %q", ErrStyleMapSyntax, source)
	}
	name := source[len(prefix) : len(source)-len(suffix)]
	if name == "" {
		return "", fmt.Errorf("%w: empty style name: %q", ErrStyleMapSyntax, source)
	}
	return name, nil
}

// parseTarget splits "tag" or "tag.class".
func parseTarget(target string) (tag, class string, err error) {
	if target == "" {
		return "", "", fmt.Errorf("%w: empty target", ErrStyleMapSyntax)
	}
	tag, class, dotted := strings.Cut(target, ".")
	if !isValidTagName(tag) || (dotted && !isValidTagName(class)) {
		return "", "", fmt.Errorf("%w: bad target %q", ErrStyleMapSyntax, target)
	}
	return tag, class, nil
}

// isValidTagName accepts ASCII letters, digits, and hyphens.
func isValidTagName(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return s != ""
}

// matchRule finds the first rule matching either the style ID or the
// resolved style name, case-insensitively.
func matchRule(rules []Rule, styleID, styleName string) (Rule, bool) {
	for _, rule := range rules {
		if strings.EqualFold(rule.StyleName, styleID) || (styleName != "" && strings.EqualFold(rule.StyleName, styleName)) {
			return rule, true
		}
	}
	return Rule{}, false
}
