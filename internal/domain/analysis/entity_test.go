package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassificationPayload(t *testing.T) {
	cl := &Classification{
		SkinType:   "Oily",
		Disease:    "Acne",
		Confidence: 0.92,
		Raw: map[string]any{
			"model_version": "v3",
			"skin_type":     "oily", // raw spelling ditimpa field kanonik
		},
	}

	p := cl.Payload()
	assert.Equal(t, "Oily", p["skin_type"])
	assert.Equal(t, "Acne", p["disease"])
	assert.Equal(t, 0.92, p["confidence"])
	assert.Equal(t, "v3", p["model_version"])
	_, hasDegraded := p["degraded"]
	assert.False(t, hasDegraded)
}

func TestClassificationPayloadDegraded(t *testing.T) {
	cl := &Classification{SkinType: "Combination", Confidence: 0.85, Degraded: true}
	p := cl.Payload()
	assert.Equal(t, true, p["degraded"])
	_, hasDisease := p["disease"]
	assert.False(t, hasDisease)
}

func TestFlagsFromRawExplicitFlags(t *testing.T) {
	f := FlagsFromRaw(map[string]any{
		"hasAcne":   true,
		"acneLevel": "moderate",
	})
	assert.True(t, f.HasAcne)
	assert.Equal(t, "moderate", f.AcneLevel)
	assert.False(t, f.IsNormal)
}

func TestFlagsFromRawSnakeCase(t *testing.T) {
	f := FlagsFromRaw(map[string]any{
		"has_eczema":   true,
		"eczema_level": "mild",
	})
	assert.True(t, f.HasEczema)
	assert.Equal(t, "mild", f.EczemaLevel)
}

func TestFlagsFromRawDerivedFromDisease(t *testing.T) {
	tests := []struct {
		disease string
		check   func(t *testing.T, f ConditionFlags)
	}{
		{"Acne", func(t *testing.T, f ConditionFlags) { assert.True(t, f.HasAcne) }},
		{"eksim", func(t *testing.T, f ConditionFlags) { assert.True(t, f.HasEczema) }},
		{"Rosacea", func(t *testing.T, f ConditionFlags) { assert.True(t, f.HasRosacea) }},
		{"Healthy", func(t *testing.T, f ConditionFlags) { assert.True(t, f.IsNormal) }},
	}
	for _, tt := range tests {
		t.Run(tt.disease, func(t *testing.T) {
			tt.check(t, FlagsFromRaw(map[string]any{"disease": tt.disease}))
		})
	}
}

func TestFlagsFromRawNoDiseaseMeansNormal(t *testing.T) {
	f := FlagsFromRaw(map[string]any{"skin_type": "Oily", "confidence": 0.9})
	assert.True(t, f.IsNormal)
	assert.False(t, f.HasAcne)
}
