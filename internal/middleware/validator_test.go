package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  bool
	}{
		{"valid jpg", "selfie.jpg", 1024, false},
		{"valid jpeg", "face.JPEG", 1024, false},
		{"valid png", "photo.png", 1024, false},
		{"valid webp", "photo.webp", 1024, false},
		{"empty filename", "", 1024, true},
		{"wrong extension", "document.pdf", 1024, true},
		{"no extension", "selfie", 1024, true},
		{"zero size", "selfie.jpg", 0, true},
		{"over limit", "selfie.jpg", MaxImageSize + 1, true},
		{"at limit", "selfie.jpg", MaxImageSize, false},
		{"path traversal", "../etc/passwd.jpg", 1024, true},
		{"shell chars", "a;rm.jpg", 1024, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageUpload(tt.filename, tt.size)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAnalysisID(t *testing.T) {
	assert.NoError(t, ValidateAnalysisID("a3bb189e-8bf9-3888-9912-ace4e6543002"))
	assert.NoError(t, ValidateAnalysisID("A3BB189E-8BF9-3888-9912-ACE4E6543002"))
	assert.Error(t, ValidateAnalysisID(""))
	assert.Error(t, ValidateAnalysisID("not-a-uuid"))
	assert.Error(t, ValidateAnalysisID("a3bb189e8bf9388899 12ace4e6543002"))
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, 3, ValidateLimit(0, 3, 100))
	assert.Equal(t, 3, ValidateLimit(-5, 3, 100))
	assert.Equal(t, 10, ValidateLimit(10, 3, 100))
	assert.Equal(t, 100, ValidateLimit(500, 3, 100))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  "))
	assert.Equal(t, "ab", SanitizeString("a\x00b"))
	assert.Equal(t, "ab", SanitizeString("a\x01\x02b"))
}
