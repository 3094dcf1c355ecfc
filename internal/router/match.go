package router

import (
	"regexp"
	"strings"
)

// Matcher reports whether a normalised path matches, and its params.
type Matcher interface {
	Match(path string) (map[string]string, bool)
}

type exact string

func (e exact) Match(path string) (map[string]string, bool) {
	return nil, path == string(e)
}

// Exact matches one fixed path.
func Exact(path string) Matcher { return exact(path) }

type prefix struct {
	prefix string
	param  string
}

func (p prefix) Match(path string) (map[string]string, bool) {
	rest, ok := strings.CutPrefix(path, p.prefix)
	if !ok || rest == "" {
		return nil, false
	}

	return map[string]string{p.param: rest}, true
}

// Prefix matches paths below prefix; the non-empty remainder is stored as param.
func Prefix(path, param string) Matcher {
	return prefix{prefix: strings.TrimSuffix(path, "/") + "/", param: param}
}

type pattern struct {
	re *regexp.Regexp
}

func (p pattern) Match(path string) (map[string]string, bool) {
	m := p.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}

	params := make(map[string]string)

	for i, name := range p.re.SubexpNames() {
		if name != "" {
			params[name] = m[i]
		}
	}

	return params, true
}

// Pattern matches a regular expression anchored to the whole path.
// Named groups become params. It panics on an invalid expression.
func Pattern(expr string) Matcher {
	return pattern{re: regexp.MustCompile("^" + expr + "$")}
}

const (
	// NumericID matches surrogate integer keys.
	NumericID = `(?P<id>\d+)`
	// UUIDID matches UUID keys.
	UUIDID = `(?P<id>[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})`
)
