package template

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// StoreReader is the read side of the ephemeral keyed store as seen by
// templates. Lookups that miss (absent or expired) are not errors.
type StoreReader interface {
	Lookup(namespace, key string) (string, bool)
}

// RequestData contains the request fields available to templates.
type RequestData struct {
	Params  map[string]string   // extracted path parameters
	Query   map[string][]string // query string parameters
	JSON    any                 // parsed JSON body, or an empty object
	Headers map[string][]string // HTTP headers, canonical keys
}

// Context holds all data available during template evaluation. It is built
// once per request and never mutated afterwards.
type Context struct {
	Request   RequestData
	Store     StoreReader
	Namespace string // store namespace for session.* lookups
}

// NewContext builds a template context from extracted request data.
// A nil jsonBody becomes an empty object so json lookups degrade to empty
// results instead of failing.
func NewContext(pathParams map[string]string, query url.Values, jsonBody any, headers http.Header) *Context {
	if pathParams == nil {
		pathParams = make(map[string]string)
	}
	if query == nil {
		query = make(url.Values)
	}
	if jsonBody == nil {
		jsonBody = map[string]any{}
	}
	if headers == nil {
		headers = make(http.Header)
	}
	return &Context{
		Request: RequestData{
			Params:  pathParams,
			Query:   query,
			JSON:    jsonBody,
			Headers: headers,
		},
	}
}

// SetStore attaches the ephemeral keyed store and the namespace under
// which session.* lookups resolve.
func (c *Context) SetStore(store StoreReader, namespace string) {
	c.Store = store
	c.Namespace = namespace
}

// ParseJSONBody decodes a request body for context construction. Bodies
// that are empty or not valid JSON yield nil, which NewContext turns into
// an empty object.
func ParseJSONBody(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil
	}
	return parsed
}
