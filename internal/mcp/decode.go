package mcp

import (
	"bytes"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/habits/internal/errors"
)

// decode unmarshals tool arguments into T. Unknown arguments are rejected so
// a misspelled field fails loudly instead of silently falling back to a
// default.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var result T
	b, err := json.Marshal(req.GetArguments())
	if err != nil {
		return result, errors.NewInvalidRequest("arguments: " + err.Error())
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&result); err != nil {
		return result, errors.NewInvalidRequest("arguments: " + err.Error())
	}
	return result, nil
}
