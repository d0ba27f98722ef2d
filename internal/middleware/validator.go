package middleware

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

// maxImageSize batas upload 5MB, sama dengan limit di ML service
const MaxImageSize = 5 * 1024 * 1024

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ValidateImageUpload checks filename extension dan ukuran payload
func ValidateImageUpload(filename string, size int64) error {
	if strings.TrimSpace(filename) == "" {
		return fmt.Errorf("image filename cannot be empty")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExt[ext] {
		return fmt.Errorf("invalid image type: %s (allowed: jpg, jpeg, png, webp)", ext)
	}

	if size <= 0 {
		return fmt.Errorf("image file is required")
	}
	if size > MaxImageSize {
		return fmt.Errorf("image size exceeds 5MB limit (%d bytes)", size)
	}

	// Block dangerous patterns in filenames
	dangerous := []string{"../", "..", "$(", "`", "&", "|", ";", "\n", "\r"}
	for _, d := range dangerous {
		if strings.Contains(filename, d) {
			return fmt.Errorf("invalid characters in filename")
		}
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateAnalysisID validates analysis record id format (UUID)
func ValidateAnalysisID(id string) error {
	if id == "" {
		return fmt.Errorf("analysis ID cannot be empty")
	}

	pattern := `^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`
	matched, _ := regexp.MatchString(pattern, strings.ToLower(id))
	if !matched {
		return fmt.Errorf("invalid analysis ID format")
	}
	return nil
}

// ValidateLimit validates product/list limit parameter
func ValidateLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
