package form

import (
	"sync"

	"github.com/dmitrymomot/formkit/pkg/config"
)

// Config controls validation scheduling.
type Config struct {
	// AutoValidate validates a field right after every Update.
	AutoValidate bool `env:"FORM_AUTO_VALIDATE" envDefault:"false"`
	// ValidateConcurrentlyOnSubmit runs submit-time validation of all fields
	// concurrently instead of one after another in field order.
	ValidateConcurrentlyOnSubmit bool `env:"FORM_VALIDATE_CONCURRENTLY_ON_SUBMIT" envDefault:"false"`
	// PreserveValidationErrorOnUpdate keeps a field's last error visible
	// until it is validated again.
	PreserveValidationErrorOnUpdate bool `env:"FORM_PRESERVE_VALIDATION_ERROR_ON_UPDATE" envDefault:"false"`
}

var (
	defaultMu     sync.RWMutex
	defaultConfig Config
)

// SetDefaultConfig sets the process-wide configuration new forms start from.
// Call it once at startup.
func SetDefaultConfig(cfg Config) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultConfig = cfg
}

// DefaultConfig returns the process-wide default configuration.
func DefaultConfig() Config {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultConfig
}

// LoadDefaultConfig reads the default configuration from the environment and
// installs it with SetDefaultConfig.
func LoadDefaultConfig() (Config, error) {
	cfg, err := config.Parse[Config]("")
	if err != nil {
		return Config{}, err
	}
	SetDefaultConfig(cfg)
	return cfg, nil
}
