// Package routing resolves an incoming (method, path) pair to a
// registered endpoint and extracts path parameters. It distinguishes an
// unknown path from a known path hit with the wrong method so the
// dispatcher can answer 404 versus 405.
package routing

import (
	"strings"

	"github.com/getmockd/reflectd/pkg/endpoint"
)

// Outcome classifies a routing attempt.
type Outcome int

const (
	// Matched means an endpoint was found for the method and path.
	Matched Outcome = iota
	// NoSuchPath means no endpoint's path template matches at all.
	NoSuchPath
	// MethodNotAllowed means the path is registered under other methods.
	MethodNotAllowed
)

// Result is the outcome of matching one request.
type Result struct {
	Outcome  Outcome
	Endpoint *endpoint.Endpoint
	Params   map[string]string // extracted path parameters, raw case
}

// Match resolves the request against the endpoint snapshot. The first
// endpoint whose path template and method both match wins. Fixed segments
// compare case-insensitively; parameter values keep the request's case.
func Match(endpoints []*endpoint.Endpoint, method, path string) Result {
	path = normalizeRequestPath(path)
	pathSeen := false

	for _, ep := range endpoints {
		params, ok := matchPath(ep.Path, path)
		if !ok {
			continue
		}
		if strings.EqualFold(string(ep.Method), method) {
			return Result{Outcome: Matched, Endpoint: ep, Params: params}
		}
		pathSeen = true
	}

	if pathSeen {
		return Result{Outcome: MethodNotAllowed}
	}
	return Result{Outcome: NoSuchPath}
}

// matchPath matches a request path against a path template segment by
// segment. {name} segments capture the corresponding request segment.
func matchPath(template, path string) (map[string]string, bool) {
	if template == path {
		return map[string]string{}, true
	}

	tsegs := splitPath(template)
	psegs := splitPath(path)
	if len(tsegs) != len(psegs) {
		return nil, false
	}

	params := map[string]string{}
	for i, tseg := range tsegs {
		if name, ok := paramName(tseg); ok {
			params[name] = psegs[i]
			continue
		}
		if !strings.EqualFold(tseg, psegs[i]) {
			return nil, false
		}
	}
	return params, true
}

// Namespace derives the keyed-store namespace for an endpoint path: the
// path with its trailing parameter segment removed, so sibling operations
// like GET /orders/{id} and POST /orders share stored state.
func Namespace(path string) string {
	segs := splitPath(path)
	if len(segs) == 0 {
		return "/"
	}
	if _, ok := paramName(segs[len(segs)-1]); ok {
		segs = segs[:len(segs)-1]
	}
	if len(segs) == 0 {
		return "/"
	}
	return "/" + strings.Join(segs, "/")
}

func normalizeRequestPath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func paramName(seg string) (string, bool) {
	if len(seg) > 2 && seg[0] == '{' && seg[len(seg)-1] == '}' {
		return seg[1 : len(seg)-1], true
	}
	return "", false
}
