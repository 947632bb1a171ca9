package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// flexID is a positive integer id that also accepts its decimal form as a
// JSON string ("1"). Form posts from the booking page send it that way.
type flexID uint

func (id *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*id = 0
			return nil
		}
		b = []byte(s)
	}

	n, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s", b)
	}
	*id = flexID(n)
	return nil
}
