package systems

import (
	"encoding/json"
	"fmt"
	"log"

	cfg "github.com/automoto/netinterp/config"
	"github.com/automoto/netinterp/interp"
	"github.com/quasilyte/gdata"
)

const settingsKey = "settings"

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	Mode          string   `json:"mode"`
	BufferDelay   float64  `json:"bufferDelay"`
	ClampAlpha    *bool    `json:"clampAlpha,omitempty"`
	JitterMillis  *float64 `json:"jitterMillis,omitempty"`
	LatencyMillis *float64 `json:"latencyMillis,omitempty"`
	Loss          *float64 `json:"loss,omitempty"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence(appName string) error {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return fmt.Errorf("open gdata: %w", err)
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadSettings loads settings from disk. It returns nil, nil when
// persistence is unavailable or nothing was saved yet.
func LoadSettings() (*SavedSettings, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem(settingsKey)
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	return DecodeSettings(data)
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}

	if err := gdataManager.SaveItem(settingsKey, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// DecodeSettings parses settings as written by SaveSettings.
func DecodeSettings(data []byte) (*SavedSettings, error) {
	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return &settings, nil
}

// CurrentSettings captures the live configuration.
func CurrentSettings() *SavedSettings {
	clamp := cfg.Interp.ClampAlpha
	jitter, latency, loss := cfg.Demo.JitterMillis, cfg.Demo.LatencyMillis, cfg.Demo.Loss
	return &SavedSettings{
		Mode:          cfg.Interp.Mode.String(),
		BufferDelay:   cfg.Interp.BufferDelay,
		ClampAlpha:    &clamp,
		JitterMillis:  &jitter,
		LatencyMillis: &latency,
		Loss:          &loss,
	}
}

// SaveCurrentSettings persists the live configuration, logging failures.
func SaveCurrentSettings() {
	if err := SaveSettings(CurrentSettings()); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
	}
}

// ApplySavedSettings copies saved values into the global configuration.
// Missing or out-of-range values leave the corresponding setting
// untouched; an unknown mode is reported in the returned error.
func ApplySavedSettings(saved *SavedSettings) error {
	if saved == nil {
		return nil
	}

	var err error
	if mode, perr := interp.ParseMode(saved.Mode); perr != nil {
		err = perr
	} else {
		cfg.Interp.Mode = mode
	}

	if saved.BufferDelay > 0 {
		cfg.Interp.BufferDelay = saved.BufferDelay
	}
	if saved.ClampAlpha != nil {
		cfg.Interp.ClampAlpha = *saved.ClampAlpha
	}

	if saved.LatencyMillis != nil && *saved.LatencyMillis >= 0 {
		cfg.Demo.LatencyMillis = *saved.LatencyMillis
	}
	if saved.JitterMillis != nil && *saved.JitterMillis >= 0 {
		cfg.Demo.JitterMillis = *saved.JitterMillis
	}
	if saved.Loss != nil && *saved.Loss >= 0 && *saved.Loss < 1 {
		cfg.Demo.Loss = *saved.Loss
	}
	return err
}
