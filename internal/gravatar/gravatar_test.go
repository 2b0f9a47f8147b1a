package gravatar

import (
	"testing"

	"github.com/quillhq/quill/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestGenerateURL(t *testing.T) {
	cfg := &config.GravatarConfig{
		Enabled:      true,
		DefaultImage: "retro",
		Rating:       "g",
		Size:         100,
	}

	url := GenerateURL("User@Example.com ", cfg)
	// md5 of "user@example.com"
	assert.Contains(t, url, "https://www.gravatar.com/avatar/b58996c504c5638798eb6b511e6f49af")
	assert.Contains(t, url, "d=retro")
	assert.Contains(t, url, "r=g")
	assert.Contains(t, url, "s=100")
}

func TestGenerateURLDisabled(t *testing.T) {
	tests := []struct {
		name  string
		email string
		cfg   *config.GravatarConfig
	}{
		{name: "nil config", email: "a@x.com", cfg: nil},
		{name: "disabled", email: "a@x.com", cfg: &config.GravatarConfig{Enabled: false}},
		{name: "empty email", email: "", cfg: &config.GravatarConfig{Enabled: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, GenerateURL(tt.email, tt.cfg))
		})
	}
}
