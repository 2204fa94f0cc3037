package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RelationIDs decodes a relation id list that older rows store as plain ids
// (["a", "b"]) and newer joins return as relation objects
// ([{"bankAccountId": "a"}, {"ruleTagId": "b"}, {"id": "c"}]).
type RelationIDs []string

var relationKeys = []string{"id", "bankAccountId", "ruleTagId"}

func (r *RelationIDs) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = RelationIDs{}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("relation ids: %w", err)
	}

	ids := make(RelationIDs, 0, len(raw))
	for _, elem := range raw {
		id, ok, err := relationID(elem)
		if err != nil {
			return err
		}
		if ok {
			ids = append(ids, id)
		}
	}
	*r = ids
	return nil
}

func relationID(elem json.RawMessage) (string, bool, error) {
	dec := json.NewDecoder(bytes.NewReader(elem))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", false, fmt.Errorf("relation id: %w", err)
	}

	switch val := v.(type) {
	case string:
		return val, val != "", nil
	case json.Number:
		return val.String(), true, nil
	case map[string]any:
		for _, key := range relationKeys {
			switch id := val[key].(type) {
			case string:
				if id != "" {
					return id, true, nil
				}
			case json.Number:
				return id.String(), true, nil
			}
		}
		return "", false, nil
	case nil:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("relation id: unsupported element %s", string(elem))
	}
}
