package specindex

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// segment is one "/"-separated piece of a path template. A literal segment
// matches itself exactly; a parameterized segment binds one or more
// "{param}" placeholders.
type segment struct {
	literal    string
	pattern    *regexp.Regexp
	paramNames []string
}

func (s segment) isParam() bool {
	return len(s.paramNames) > 0
}

// pathTemplate is a compiled OpenAPI path template ("/users/{id}").
type pathTemplate struct {
	template   string
	segments   []segment
	operations map[string]*operationDef

	// paramSegments is the number of parameterized segments; fewer wins.
	paramSegments int

	// literalChars breaks ties between templates with the same number of
	// parameterized segments ("/files/{name}.json" beats "/files/{name}").
	literalChars int
}

// parseTemplate compiles a path template.
//
// Returns an error if the template is malformed (e.g., unclosed braces).
func parseTemplate(template string) (*pathTemplate, error) {
	if template == "" {
		return nil, fmt.Errorf("path template cannot be empty")
	}

	pt := &pathTemplate{template: template}
	seen := make(map[string]struct{})

	for _, raw := range splitPath(template) {
		seg, err := parseSegment(raw, template)
		if err != nil {
			return nil, err
		}

		for _, name := range seg.paramNames {
			if _, dup := seen[name]; dup {
				return nil, fmt.Errorf("duplicate path parameter %q in template %q", name, template)
			}
			seen[name] = struct{}{}
		}

		if seg.isParam() {
			pt.paramSegments++
		}
		pt.literalChars += len(stripPlaceholders(raw))
		pt.segments = append(pt.segments, seg)
	}

	return pt, nil
}

func parseSegment(raw, template string) (segment, error) {
	if !strings.Contains(raw, "{") {
		if strings.Contains(raw, "}") {
			return segment{}, fmt.Errorf("unopened path parameter in template %q", template)
		}
		return segment{literal: raw}, nil
	}

	var (
		regexBuf   strings.Builder
		paramNames []string
	)
	regexBuf.WriteString("^")

	i := 0
	for i < len(raw) {
		if raw[i] != '{' {
			next := strings.IndexByte(raw[i:], '{')
			if next == -1 {
				next = len(raw) - i
			}
			regexBuf.WriteString(regexp.QuoteMeta(raw[i : i+next]))
			i += next
			continue
		}

		end := strings.IndexByte(raw[i:], '}')
		if end == -1 {
			return segment{}, fmt.Errorf("unclosed path parameter in template %q", template)
		}

		name := raw[i+1 : i+end]
		if name == "" {
			return segment{}, fmt.Errorf("empty path parameter in template %q", template)
		}

		paramNames = append(paramNames, name)
		regexBuf.WriteString("(.+?)")
		i += end + 1
	}
	regexBuf.WriteString("$")

	if raw == "{"+paramNames[0]+"}" {
		return segment{paramNames: paramNames}, nil
	}

	pattern, err := regexp.Compile(regexBuf.String())
	if err != nil {
		return segment{}, fmt.Errorf("failed to compile path pattern for template %q: %w", template, err)
	}

	return segment{pattern: pattern, paramNames: paramNames}, nil
}

// match binds the request path parts to the template. It reports false
// when the segment counts differ or any segment does not match.
func (pt *pathTemplate) match(parts []string) (map[string]string, bool) {
	if len(parts) != len(pt.segments) {
		return nil, false
	}

	params := make(map[string]string)
	for i, seg := range pt.segments {
		part := parts[i]

		switch {
		case !seg.isParam():
			if part != seg.literal {
				return nil, false
			}
		case seg.pattern == nil:
			if part == "" {
				return nil, false
			}
			params[seg.paramNames[0]] = part
		default:
			matches := seg.pattern.FindStringSubmatch(part)
			if matches == nil || len(matches) != len(seg.paramNames)+1 {
				return nil, false
			}
			for j, name := range seg.paramNames {
				params[name] = matches[j+1]
			}
		}
	}

	return params, true
}

// moreSpecific reports whether pt should win over other for the same path.
func (pt *pathTemplate) moreSpecific(other *pathTemplate) bool {
	if pt.paramSegments != other.paramSegments {
		return pt.paramSegments < other.paramSegments
	}
	return pt.literalChars > other.literalChars
}

func (pt *pathTemplate) sameSpecificity(other *pathTemplate) bool {
	return pt.paramSegments == other.paramSegments && pt.literalChars == other.literalChars
}

func (pt *pathTemplate) methods() []string {
	methods := make([]string, 0, len(pt.operations))
	for m := range pt.operations {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}

// splitPath tokenizes a path by "/", ignoring the leading slash.
func splitPath(path string) []string {
	return strings.Split(strings.TrimPrefix(path, "/"), "/")
}

func stripPlaceholders(raw string) string {
	var b strings.Builder
	depth := 0
	for _, r := range raw {
		switch {
		case r == '{':
			depth++
		case r == '}' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
