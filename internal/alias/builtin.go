// SPDX-License-Identifier: MIT

package alias

import (
	_ "embed"
	"encoding/json"
)

//go:embed builtin_alias.json
var builtinJSON []byte

// builtinTable is the default alias table bundled with the application.
var builtinTable = func() map[string][]string {
	var m map[string][]string
	if err := json.Unmarshal(builtinJSON, &m); err != nil {
		panic("alias: invalid embedded builtin_alias.json: " + err.Error())
	}
	return m
}()
