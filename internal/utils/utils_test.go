package utils_test

import (
	"testing"

	"github.com/jrsteele09/now-playing/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestToStringSlice(t *testing.T) {
	in := []any{" first fact ", "", 42.0, true, map[string]any{}, "second"}
	require.Equal(t, []string{"first fact", "42", "second"}, utils.ToStringSlice(in, 0))
	require.Equal(t, []string{"first fact", "42"}, utils.ToStringSlice(in, 2))
	require.Empty(t, utils.ToStringSlice(nil, 0))
}

func TestLimit(t *testing.T) {
	require.Equal(t, []int{1, 2}, utils.Limit([]int{1, 2, 3}, 2))
	require.Equal(t, []int{1}, utils.Limit([]int{1}, 5))
}

func TestPointers(t *testing.T) {
	require.Nil(t, utils.NonZeroPtr(""))
	require.Equal(t, "GB123", *utils.NonZeroPtr("GB123"))
}
