// Package config loads parachute configuration from files and autopilot
// parameter tables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/promistrio/albatros-chute/pkg/domain"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for file extensions Load cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// ServoType is the CHUTE_TYPE value that selects the servo output. Values
// 0..domain.MaxRelayChannel select a relay channel.
const ServoType = 10

// Load reads a YAML or JSON config file over domain.DefaultConfig and validates it.
// Fields absent from the file keep their defaults.
func Load(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	if err := decodeFile(path, &cfg); err != nil {
		return domain.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadParams reads a YAML or JSON table of CHUTE_* parameters and converts it with
// FromParams.
func LoadParams(path string) (domain.Config, error) {
	raw := map[string]any{}
	if err := decodeFile(path, &raw); err != nil {
		return domain.Config{}, err
	}
	cfg, err := FromParams(raw)
	if err != nil {
		return domain.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, out)
	case ".json":
		err = json.Unmarshal(data, out)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// params mirrors the autopilot parameter names. Ground stations send every value
// as a float, so decoding is weakly typed.
type params struct {
	Enabled   bool    `mapstructure:"CHUTE_ENABLED"`
	Type      int     `mapstructure:"CHUTE_TYPE"`
	ServoOn   int16   `mapstructure:"CHUTE_SERVO_ON"`
	ServoOff  int16   `mapstructure:"CHUTE_SERVO_OFF"`
	AltMin    int16   `mapstructure:"CHUTE_ALT_MIN"`
	DelayMS   uint32  `mapstructure:"CHUTE_DELAY_MS"`
	HoldMS    uint32  `mapstructure:"CHUTE_HOLD_MS"`
	CritSink  float64 `mapstructure:"CHUTE_CRT_SINK"`
	AutoOn    bool    `mapstructure:"CHUTE_AUTO_ON"`
	AutoAlt   int16   `mapstructure:"CHUTE_AUTO_ALT"`
	AutoEnAlt int16   `mapstructure:"CHUTE_AUTO_EN_ALT"`
	CritPitch int16   `mapstructure:"CHUTE_CRT_PITCH"`
	CritRoll  int16   `mapstructure:"CHUTE_CRT_ROLL"`
}

// FromParams builds a config from an autopilot parameter table. Unknown keys are
// ignored and missing keys keep their defaults.
func FromParams(raw map[string]any) (domain.Config, error) {
	def := domain.DefaultConfig()
	p := params{
		Type:      def.RelayChannel,
		ServoOn:   def.ServoOnPWM,
		ServoOff:  def.ServoOffPWM,
		AltMin:    def.AltMin,
		DelayMS:   def.PreReleaseDelayMS,
		HoldMS:    def.HoldDurationMS,
		CritSink:  def.CriticalSinkMPS,
		AutoAlt:   def.AutoReleaseAltM,
		CritPitch: def.CriticalPitchCentideg,
		CritRoll:  def.CriticalRollCentideg,
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &p,
	})
	if err != nil {
		return domain.Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return domain.Config{}, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}

	cfg := def
	cfg.Enabled = p.Enabled
	cfg.AutoEnabled = p.AutoOn
	switch {
	case p.Type == ServoType:
		cfg.Type = domain.ReleaseServo
	case p.Type >= 0 && p.Type <= domain.MaxRelayChannel:
		cfg.Type = domain.ReleaseRelay
		cfg.RelayChannel = p.Type
	default:
		return domain.Config{}, fmt.Errorf("%w: CHUTE_TYPE %d is neither a relay channel nor %d (servo)", domain.ErrInvalidConfig, p.Type, ServoType)
	}
	cfg.ServoOnPWM = p.ServoOn
	cfg.ServoOffPWM = p.ServoOff
	cfg.AltMin = p.AltMin
	cfg.PreReleaseDelayMS = p.DelayMS
	cfg.HoldDurationMS = p.HoldMS
	cfg.CriticalSinkMPS = p.CritSink
	cfg.AutoReleaseAltM = p.AutoAlt
	cfg.AutoEnableAltM = p.AutoEnAlt
	cfg.CriticalPitchCentideg = p.CritPitch
	cfg.CriticalRollCentideg = p.CritRoll

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}
