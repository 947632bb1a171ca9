package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlexID(t *testing.T) {
	ok := map[string]uint{
		`1`:     1,
		`"12"`:  12,
		`null`:  0,
		`""`:    0,
		` 7 `:   7,
		`"007"`: 7,
	}
	for raw, want := range ok {
		var id flexID
		assert.NoError(t, json.Unmarshal([]byte(raw), &id), raw)
		assert.Equal(t, want, uint(id), raw)
	}

	for _, raw := range []string{`"uno"`, `-1`, `1.5`, `true`, `"1 "`} {
		var id flexID
		assert.Error(t, json.Unmarshal([]byte(raw), &id), raw)
	}
}
