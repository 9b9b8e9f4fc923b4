// SPDX-License-Identifier: MIT

// Package transform applies optional source-supplied transformation scripts
// to parsed channel items. Transform failures never abort a pipeline; the
// caller keeps the untransformed list.
package transform

import (
	"encoding/json"
	"fmt"

	"github.com/dop251/goja"

	"github.com/mytv-core/sourcekit/internal/channel"
)

// Strategy rewrites a parsed item list.
type Strategy interface {
	Apply(items []channel.Item) ([]channel.Item, error)
}

// JS runs a user script in an isolated interpreter. The script must define
// `main(channelList)` returning a JSON-serializable item list; it sees only
// the serialized items, never the host environment.
type JS struct {
	script string
}

// NewJS wraps a transform script. An empty script is a valid no-op.
func NewJS(script string) *JS {
	return &JS{script: script}
}

// Apply feeds the JSON-serialized items through the script.
func (j *JS) Apply(items []channel.Item) ([]channel.Item, error) {
	if j.script == "" {
		return items, nil
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}

	vm := goja.New()
	src := fmt.Sprintf(`(function() {
	var channelList = %s;
	%s
	return JSON.stringify(main(channelList));
})();`, payload, j.script)

	v, err := vm.RunString(src)
	if err != nil {
		return nil, fmt.Errorf("run transform script: %w", err)
	}

	var out []channel.Item
	if err := json.Unmarshal([]byte(v.String()), &out); err != nil {
		return nil, fmt.Errorf("decode transform result: %w", err)
	}
	return out, nil
}
