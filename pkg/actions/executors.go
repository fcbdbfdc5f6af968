package actions

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// runDelay blocks the handling goroutine for the requested number of
// seconds, clamped to the configured maximum.
func (e *Executor) runDelay(args []string) {
	if len(args) < 1 {
		e.log.Warn("DELAY action missing its seconds argument")
		return
	}
	secs, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
	if err != nil {
		e.log.Warn("DELAY action has a non-numeric argument", "argument", args[0])
		return
	}
	if secs <= 0 {
		return
	}

	d := time.Duration(secs * float64(time.Second))
	if e.maxDelay > 0 && d > e.maxDelay {
		e.log.Warn("clamping DELAY to the configured maximum",
			"requested", d, "max", e.maxDelay)
		d = e.maxDelay
	}
	e.sleep(d)
}

// runCallback posts a JSON payload to the URL named by the url argument.
// The payload merges the action's own key=value arguments over the request
// body and rendered content supplied by the dispatcher. Callbacks are best
// effort, so transport failures are logged and swallowed.
func (e *Executor) runCallback(args []string, in Inputs) {
	kv := e.parseKeyValues(args)
	url, ok := kv["url"]
	if !ok || url == "" {
		e.log.Warn("CALLBACK action has no url argument, skipping")
		return
	}
	delete(kv, "url")

	payload := map[string]string{
		"request_body": in.RequestBody,
		"content":      in.RenderedContent,
	}
	for k, v := range kv {
		payload[k] = v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		e.log.Warn("CALLBACK payload could not be encoded", "error", err)
		return
	}

	resp, err := e.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		e.log.Warn("CALLBACK delivery failed", "url", url, "error", err)
		return
	}
	// A non-2xx answer is the target's business, not a delivery failure.
	resp.Body.Close()
	e.log.Debug("CALLBACK delivered", "url", url, "status", resp.StatusCode)
}

// runStore writes a key/value pair into the ephemeral store under the
// request's namespace, with the configured session TTL.
func (e *Executor) runStore(args []string, in Inputs) {
	if len(args) < 2 {
		e.log.Warn("STORE action needs a key and a value", "arguments", len(args))
		return
	}
	if e.store == nil {
		e.log.Warn("STORE action has no store configured, skipping")
		return
	}
	e.store.Set(in.Namespace, args[0], args[1], e.sessionTTL)
	e.log.Debug("STORE wrote entry", "namespace", in.Namespace, "key", args[0])
}

// parseKeyValues splits key=value tokens on the first = only, so values
// may themselves contain =. Tokens without a = are logged and dropped.
func (e *Executor) parseKeyValues(args []string) map[string]string {
	kv := make(map[string]string, len(args))
	for _, arg := range args {
		key, val, found := strings.Cut(arg, "=")
		if !found {
			e.log.Warn("ignoring malformed key=value argument", "argument", arg)
			continue
		}
		kv[key] = val
	}
	return kv
}
