package index

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateParams(t *testing.T) {
	tests := []struct {
		name    string
		dim     int
		l, m    int
		wantErr string
	}{
		{"Valid", 3, 1, 2, ""},
		{"MaxBits", 16, 4, 64, ""},
		{"ZeroDimension", 0, 1, 1, "dimension"},
		{"NegativeDimension", -5, 1, 1, "dimension"},
		{"ZeroTables", 3, 0, 1, "number of tables"},
		{"ZeroBits", 3, 1, 0, "bits per table"},
		{"TooManyBits", 3, 1, 65, "bits per table"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParams(tt.dim, tt.l, tt.m)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			var ip *ErrInvalidParameter
			require.True(t, errors.As(err, &ip))
			assert.Equal(t, tt.wantErr, ip.Name)
		})
	}
}

func TestCheckDimension(t *testing.T) {
	require.NoError(t, CheckDimension([]float64{1, 2, 3}, 3))

	err := CheckDimension([]float64{1, 2}, 3)
	require.Error(t, err)
	assert.IsType(t, &ErrDimensionMismatch{}, err)
	assert.Equal(t, "dimension mismatch: expected 3, got 2", err.Error())

	err = CheckDimension(nil, 1)
	var dm *ErrDimensionMismatch
	require.True(t, errors.As(err, &dm))
	assert.Equal(t, 1, dm.Expected)
	assert.Equal(t, 0, dm.Actual)
}
