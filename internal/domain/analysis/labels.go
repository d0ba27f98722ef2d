package analysis

import "strings"

// SkinType enum (closed vocabulary)
type SkinType string

const (
	SkinOily        SkinType = "Oily"
	SkinDry         SkinType = "Dry"
	SkinCombination SkinType = "Combination"
	SkinNormal      SkinType = "Normal"
	SkinSensitive   SkinType = "Sensitive"
)

// Condition enum (closed vocabulary)
type Condition string

const (
	ConditionAcne      Condition = "Acne"
	ConditionEczema    Condition = "Eczema"
	ConditionRosacea   Condition = "Rosacea"
	ConditionPsoriasis Condition = "Psoriasis"
	ConditionMelasma   Condition = "Melasma"
	ConditionVitiligo  Condition = "Vitiligo"
	ConditionHealthy   Condition = "Healthy"
	ConditionGeneral   Condition = "General"
)

// Lookup tables: semua spelling yang pernah muncul dari classifier.
// Key lowercase; entry yang tidak dikenal jatuh ke default, tidak pernah error,
// karena vocabulary classifier bisa berubah tanpa kabar.
var skinTypeTable = map[string]SkinType{
	"oily":        SkinOily,
	"oil":         SkinOily,
	"dry":         SkinDry,
	"combination": SkinCombination,
	"combo":       SkinCombination,
	"normal":      SkinNormal,
	"sensitive":   SkinSensitive,
}

var conditionTable = map[string]Condition{
	"acne":      ConditionAcne,
	"akne":      ConditionAcne,
	"eczema":    ConditionEczema,
	"eksim":     ConditionEczema,
	"rosacea":   ConditionRosacea,
	"rozase":    ConditionRosacea,
	"psoriasis": ConditionPsoriasis,
	"melasma":   ConditionMelasma,
	"vitiligo":  ConditionVitiligo,
	"healthy":   ConditionHealthy,
	"normal":    ConditionHealthy,
	"general":   ConditionGeneral,
}

// NormalizeSkinType total: setiap input resolve ke tepat satu entry,
// default SkinNormal.
func NormalizeSkinType(raw string) SkinType {
	if t, ok := skinTypeTable[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return t
	}
	return SkinNormal
}

// NormalizeCondition total, default ConditionGeneral.
func NormalizeCondition(raw string) Condition {
	if c, ok := conditionTable[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return c
	}
	return ConditionGeneral
}

// Satu tabel kanonik label -> kategori katalog produk. Sebelumnya mapping
// ini tersebar dan tidak konsisten antar call site (Psoriasis kadang ke
// eczema kadang ke healthy); sekarang cuma boleh lewat sini.
var skinTypeCategory = map[SkinType]string{
	SkinOily:        "oily",
	SkinDry:         "dry",
	SkinCombination: "combination",
	SkinNormal:      "normal",
	SkinSensitive:   "normal",
}

var conditionCategory = map[Condition]string{
	ConditionAcne:      "acne",
	ConditionEczema:    "eczema",
	ConditionRosacea:   "rosacea",
	ConditionPsoriasis: "eczema",
	ConditionMelasma:   "healthy",
	ConditionVitiligo:  "healthy",
	ConditionHealthy:   "healthy",
	ConditionGeneral:   "healthy",
}

// Category mengembalikan key katalog untuk skin type.
func (t SkinType) Category() string {
	if c, ok := skinTypeCategory[t]; ok {
		return c
	}
	return "normal"
}

// Category mengembalikan key katalog untuk condition.
func (c Condition) Category() string {
	if cat, ok := conditionCategory[c]; ok {
		return cat
	}
	return "healthy"
}
