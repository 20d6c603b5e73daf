package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"chem.app/api/common/id"
)

// ID is a snowflake ID in a request body. Clients may send it as a decimal
// string or as a JSON number.
type ID int64

func (v *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	parsed, err := id.Parse(string(b))
	if err != nil {
		return fmt.Errorf("decoding id: %w", err)
	}
	*v = ID(parsed)
	return nil
}

// Int64 returns nil for a nil ID.
func (v *ID) Int64() *int64 {
	if v == nil {
		return nil
	}
	i := int64(*v)
	return &i
}
