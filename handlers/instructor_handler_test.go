package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContainsFold(t *testing.T) {
	specialties := []string{"Freestyle", "off-piste", "Snowboard"}

	require.True(t, containsFold(specialties, "freestyle"))
	require.True(t, containsFold(specialties, "OFF-PISTE"))
	require.True(t, containsFold(specialties, "Snowboard"))
	require.False(t, containsFold(specialties, "telemark"))
	require.False(t, containsFold(nil, "freestyle"))
}
