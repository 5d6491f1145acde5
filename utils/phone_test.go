package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhoneNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "formatted ten digits", input: "(555) 123-4567", want: "+15551234567"},
		{name: "bare ten digits", input: "5551234567", want: "+15551234567"},
		{name: "eleven digits with leading one", input: "1-555-123-4567", want: "+15551234567"},
		{name: "already normalized", input: "+15551234567", want: "+15551234567"},
		{name: "dots and spaces", input: "555.123.4567", want: "+15551234567"},
		{name: "too short", input: "555-1234", wantErr: true},
		{name: "eleven digits without leading one", input: "25551234567", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "letters only", input: "call me", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhoneNumber(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
