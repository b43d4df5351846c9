package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"success envelope", `{"status":"success","status_code":200,"data":{"x":1}}`, true},
		{"error envelope", `{"status":"error","status_code":404,"error":"gone"}`, true},
		{"bare payload with own status field", `{"status":"OK","database":"connected"}`, false},
		{"bare payload", `{"name":"roti"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Raw
			require.NoError(t, json.Unmarshal([]byte(tt.body), &r))
			assert.Equal(t, tt.want, r.IsEnvelope())
		})
	}
}

func TestSuccessAndError(t *testing.T) {
	s := Success(200, map[string]int{"x": 1})
	assert.Equal(t, "success", s.Status)
	assert.Equal(t, 200, s.StatusCode)
	assert.Empty(t, s.Error)

	e := Error(400, "bad input")
	assert.Equal(t, "error", e.Status)
	assert.Equal(t, "bad input", e.Error)
	assert.Nil(t, e.Data)
}
