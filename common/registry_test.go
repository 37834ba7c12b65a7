package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNopRegistryDiscards(t *testing.T) {
	var r NopRegistry
	r.RegisterFeature(FeatureThrowNoSuchMethod)
	r.AttachConstructorError(1, "boom")
}

func TestRecordingRegistryAccumulates(t *testing.T) {
	r := NewRecordingRegistry()

	r.RegisterFeature(FeatureThrowNoSuchMethod)
	r.RegisterFeature(FeatureThrowNoSuchMethod)
	r.AttachConstructorError(ID(7), "no matching constructor")
	r.AttachConstructorError(ID(7), "second issue")

	require.Equal(t, []string{FeatureThrowNoSuchMethod, FeatureThrowNoSuchMethod}, r.Features)
	require.Equal(t, []string{"no matching constructor", "second issue"}, r.ConstructorErrors[ID(7)])
}
