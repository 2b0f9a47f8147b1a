package gravatar

import (
	"crypto/md5"
	"fmt"
	"net/url"
	"strings"

	"github.com/quillhq/quill/internal/config"
)

// GenerateURL generates a Gravatar URL for the given email address using the
// provided configuration. Returns an empty string if Gravatar is disabled or
// the email is empty.
func GenerateURL(email string, cfg *config.GravatarConfig) string {
	if cfg == nil || !cfg.Enabled || email == "" {
		return ""
	}

	// Gravatar hashes the lowercased address
	email = strings.TrimSpace(strings.ToLower(email))
	hash := md5.Sum([]byte(email)) //nolint:gosec

	baseURL := fmt.Sprintf("https://www.gravatar.com/avatar/%x", hash)

	params := url.Values{}
	if cfg.DefaultImage != "" {
		params.Add("d", cfg.DefaultImage)
	}
	if cfg.Rating != "" {
		params.Add("r", cfg.Rating)
	}
	if cfg.Size > 0 {
		params.Add("s", fmt.Sprintf("%d", cfg.Size))
	}

	if len(params) > 0 {
		baseURL = baseURL + "?" + params.Encode()
	}

	return baseURL
}
