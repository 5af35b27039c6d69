package cli

import (
	"fmt"

	"github.com/promistrio/albatros-chute/pkg/domain"
)

// Validate loads and checks the configuration, then prints the effective values.
func Validate(opts CommonOptions) (domain.Config, error) {
	if opts.ConfigPath == "" && opts.ParamsPath == "" {
		return domain.Config{}, fmt.Errorf("one of --config or --params is required")
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return domain.Config{}, err
	}

	output := fmt.Sprintf("relay %d", cfg.RelayChannel)
	if cfg.Type == domain.ReleaseServo {
		output = fmt.Sprintf("servo %d/%d us", cfg.ServoOnPWM, cfg.ServoOffPWM)
	}
	printSystemMessage(opts.Out, "enabled=%t auto=%t output=%s", cfg.Enabled, cfg.AutoEnabled, output)
	printSystemMessage(opts.Out, "delay=%s hold=%s alt_min=%dm", cfg.PreReleaseDelay(), cfg.HoldDuration(), cfg.AltMin)
	printSystemMessage(opts.Out, "auto release below %dm once above %dm, sink %gm/s, pitch %d, roll %d",
		cfg.AutoReleaseAltM, cfg.AutoEnableAlt(), cfg.CriticalSinkMPS, cfg.CriticalPitchCentideg, cfg.CriticalRollCentideg)
	return cfg, nil
}
