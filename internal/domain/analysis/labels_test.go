package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkinType(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want SkinType
	}{
		{"exact match", "Oily", SkinOily},
		{"lowercase", "dry", SkinDry},
		{"uppercase", "COMBINATION", SkinCombination},
		{"whitespace", "  normal  ", SkinNormal},
		{"short form combo", "combo", SkinCombination},
		{"short form oil", "oil", SkinOily},
		{"sensitive", "Sensitive", SkinSensitive},
		{"unknown falls to default", "glowing", SkinNormal},
		{"empty falls to default", "", SkinNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSkinType(tt.raw))
		})
	}
}

func TestNormalizeCondition(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Condition
	}{
		{"acne", "Acne", ConditionAcne},
		{"acne variant spelling", "akne", ConditionAcne},
		{"eczema variant spelling", "eksim", ConditionEczema},
		{"rosacea variant spelling", "rozase", ConditionRosacea},
		{"normal maps to healthy", "normal", ConditionHealthy},
		{"psoriasis", "psoriasis", ConditionPsoriasis},
		{"unknown falls to default", "wrinkles", ConditionGeneral},
		{"empty falls to default", "", ConditionGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCondition(tt.raw))
		})
	}
}

func TestSkinTypeCategory(t *testing.T) {
	assert.Equal(t, "oily", SkinOily.Category())
	assert.Equal(t, "combination", SkinCombination.Category())
	// sensitive tidak punya shelf sendiri di katalog
	assert.Equal(t, "normal", SkinSensitive.Category())
	assert.Equal(t, "normal", SkinType("Bogus").Category())
}

func TestConditionCategory(t *testing.T) {
	assert.Equal(t, "acne", ConditionAcne.Category())
	assert.Equal(t, "eczema", ConditionEczema.Category())
	// psoriasis share treatment dengan eczema
	assert.Equal(t, "eczema", ConditionPsoriasis.Category())
	assert.Equal(t, "healthy", ConditionMelasma.Category())
	assert.Equal(t, "healthy", ConditionVitiligo.Category())
	assert.Equal(t, "healthy", ConditionGeneral.Category())
	assert.Equal(t, "healthy", Condition("Bogus").Category())
}

func TestNormalizeThenCategoryIsTotal(t *testing.T) {
	// setiap raw string harus selalu resolve ke category katalog valid
	for _, raw := range []string{"Oily", "akne", "", "???", "ROSACEA", "melasma"} {
		assert.NotEmpty(t, NormalizeSkinType(raw).Category(), "raw=%q", raw)
		assert.NotEmpty(t, NormalizeCondition(raw).Category(), "raw=%q", raw)
	}
}
