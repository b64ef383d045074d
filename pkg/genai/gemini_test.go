package genai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `[{"a":1}]`, `[{"a":1}]`},
		{"json fence", "```json\n[{\"a\":1}]\n```", `[{"a":1}]`},
		{"plain fence", "```\n{\"b\":2}\n```", `{"b":2}`},
		{"leading whitespace", "  \n```json\n[]\n```\n ", `[]`},
		{"no closing fence", "```json\n[1,2]", `[1,2]`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(StripFences([]byte(tt.in))))
		})
	}
}
