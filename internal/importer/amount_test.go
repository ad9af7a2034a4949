package importer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/credito/internal/importer"
)

func TestParseAmount(t *testing.T) {
	type testCase struct {
		input   string
		want    int64
		wantErr bool
	}

	tests := []testCase{
		{input: "1.234,56", want: 123456},
		{input: "R$ 50,00", want: 5000},
		{input: "10", want: 1000},
		{input: " 0,5 ", want: 50},
		{input: "-12,30", want: -1230},
		{input: "92.233.720.368.547.758,07", want: 9223372036854775807},
		{input: "92.233.720.368.547.758,08", wantErr: true},
		{input: "184467440737095516,17", wantErr: true},
		{input: "99999999999999999999,99", wantErr: true},
		{input: "1e3", wantErr: true},
		{input: "1E3", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := importer.ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
