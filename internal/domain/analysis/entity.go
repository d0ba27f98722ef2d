package analysis

import (
	"time"
)

// ID tipe untuk Analysis
type AnalysisID string

// ConditionFlags value object, diturunkan dari raw classifier payload.
// Jangan mutate manual: selalu recompute lewat FlagsFromRaw.
type ConditionFlags struct {
	HasAcne      bool   `json:"hasAcne"`
	AcneLevel    string `json:"acneLevel,omitempty"`
	HasEczema    bool   `json:"hasEczema"`
	EczemaLevel  string `json:"eczemaLevel,omitempty"`
	HasRosacea   bool   `json:"hasRosacea"`
	RosaceaLevel string `json:"rosaceaLevel,omitempty"`
	IsNormal     bool   `json:"isNormal"`
}

// Aggregate Root: Analysis
// ImageURL dan RawResult selalu terisi; record immutable setelah dibuat
// (hanya bisa hard delete oleh owner).
type Analysis struct {
	ID        AnalysisID     `json:"id"`
	UserID    string         `json:"userId"`
	ImageURL  string         `json:"imageUrl"`
	RawResult map[string]any `json:"resultJson"`
	Flags     ConditionFlags `json:"flags"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Classification hasil dari classifier service (atau fallback lokal).
type Classification struct {
	SkinType   string         `json:"skin_type"`
	Disease    string         `json:"disease,omitempty"`
	Confidence float64        `json:"confidence"`
	Degraded   bool           `json:"degraded,omitempty"`
	Raw        map[string]any `json:"-"`
}

// Payload membangun raw result payload yang disimpan ke store.
// Raw fields dari classifier dipertahankan apa adanya, field kanonik
// ditimpa supaya konsisten.
func (c *Classification) Payload() map[string]any {
	out := make(map[string]any, len(c.Raw)+4)
	for k, v := range c.Raw {
		out[k] = v
	}
	out["skin_type"] = c.SkinType
	if c.Disease != "" {
		out["disease"] = c.Disease
	}
	out["confidence"] = c.Confidence
	if c.Degraded {
		out["degraded"] = true
	}
	return out
}

// FlagsFromRaw recompute derived flags dari raw payload.
// Menerima kedua gaya penamaan (camelCase dan snake_case) karena
// classifier vocabulary bisa drift.
func FlagsFromRaw(raw map[string]any) ConditionFlags {
	f := ConditionFlags{
		HasAcne:      rawBool(raw, "hasAcne", "has_acne"),
		AcneLevel:    rawString(raw, "acneLevel", "acne_level"),
		HasEczema:    rawBool(raw, "hasEczema", "has_eczema"),
		EczemaLevel:  rawString(raw, "eczemaLevel", "eczema_level"),
		HasRosacea:   rawBool(raw, "hasRosacea", "has_rosacea"),
		RosaceaLevel: rawString(raw, "rosaceaLevel", "rosacea_level"),
		IsNormal:     rawBool(raw, "isNormal", "is_normal"),
	}

	// Kalau classifier cuma kasih label disease, flags diturunkan dari situ.
	switch NormalizeCondition(rawString(raw, "disease", "disease_prediction")) {
	case ConditionAcne:
		f.HasAcne = true
	case ConditionEczema:
		f.HasEczema = true
	case ConditionRosacea:
		f.HasRosacea = true
	case ConditionHealthy:
		f.IsNormal = true
	}
	if !f.HasAcne && !f.HasEczema && !f.HasRosacea {
		if _, ok := firstRaw(raw, "disease", "disease_prediction"); !ok {
			f.IsNormal = true
		}
	}
	return f
}

func firstRaw(raw map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func rawBool(raw map[string]any, keys ...string) bool {
	v, ok := firstRaw(raw, keys...)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

func rawString(raw map[string]any, keys ...string) string {
	v, ok := firstRaw(raw, keys...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
