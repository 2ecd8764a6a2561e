package controllers

import (
	"bytes"
	"encoding/json"

	idsvc "github.com/lyle8341/flake/internal/services/ids"
)

// idText is an id in a request body, written either as a JSON number or as a
// string in the request's format.
type idText string

func (t *idText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = idText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = idText(n.String())
	return nil
}

// generateResp lists freshly minted ids. Ids are always strings, decimal
// included, since default-layout ids exceed 2^53 and JSON numbers lose them.
type generateResp struct {
	IDs []string `json:"ids"`
}

// inspectReq asks for the ids matching a CEL filter.
type inspectReq struct {
	IDs    []idText `json:"ids"`
	Format string   `json:"format"`
	Filter string   `json:"filter"`
}

// inspectResp carries the decoded ids that matched.
type inspectResp struct {
	Matches []idsvc.Decoded `json:"matches"`
	Count   int             `json:"count"`
}
