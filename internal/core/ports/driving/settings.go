package driving

import "github.com/ocean48/oceanbot/internal/core/domain"

// SettingsService resolves application settings from defaults, the config
// file and the environment, in increasing precedence.
type SettingsService interface {
	// Get resolves the current settings.
	Get() (*domain.Settings, error)

	// Set validates value for key and persists it to the config file.
	Set(key, value string) error

	// Describe lists every known setting with its resolved value and source.
	Describe() ([]domain.SettingValue, error)

	// Keys returns the names of all known settings.
	Keys() []string
}
