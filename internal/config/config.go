package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// Onsager values for the square-lattice Ising model.
	DefaultTc    = 2.269
	DefaultGamma = 1.75
	DefaultNu    = 1.0

	DefaultTablePattern = "ising_L%d.csv"
	DefaultFigurePath   = "finite_size_scaling.png"
	DefaultDPI          = 300
	DefaultWidthIn      = 16.0
	DefaultHeightIn     = 6.0
	DefaultXMin         = -2.0
	DefaultXMax         = 2.0

	DefaultSnapshotPath  = "snapshots.txt"
	DefaultAnimationPath = "domain_growth.gif"
	DefaultGrid          = 200
	DefaultFPS           = 20
	DefaultCellSize      = 2
)

// DefaultSizes mirrors the lattice sizes the simulator sweeps by default.
var DefaultSizes = []int{20, 40, 60, 80}

// DefaultPalette is blue, green, red, magenta.
var DefaultPalette = []string{"#0000ff", "#008000", "#ff0000", "#bf00bf"}

type Config struct {
	Scaling   ScalingConfig   `yaml:"scaling"`
	Collapse  CollapseConfig  `yaml:"collapse"`
	Animation AnimationConfig `yaml:"animation"`
}

type ScalingConfig struct {
	Tc      float64  `yaml:"tc" env:"ISINGVIZ_TC" validate:"gt=0"`
	Gamma   float64  `yaml:"gamma" env:"ISINGVIZ_GAMMA" validate:"gt=0"`
	Nu      float64  `yaml:"nu" env:"ISINGVIZ_NU" validate:"gt=0"`
	Sizes   []int    `yaml:"sizes" env:"ISINGVIZ_SIZES" envSeparator:"," validate:"required,min=1,unique,dive,gt=0"`
	Palette []string `yaml:"palette" env:"ISINGVIZ_PALETTE" envSeparator:"," validate:"required,min=1,dive,hexcolor"`
}

type CollapseConfig struct {
	DataDir      string  `yaml:"data_dir" env:"ISINGVIZ_DATA_DIR" validate:"required"`
	TablePattern string  `yaml:"table_pattern" env:"ISINGVIZ_TABLE_PATTERN" validate:"required,contains=%d"`
	Mode         string  `yaml:"mode" env:"ISINGVIZ_MODE" validate:"oneof=display save"`
	Output       string  `yaml:"output" env:"ISINGVIZ_FIGURE" validate:"required_if=Mode save"`
	DPI          float64 `yaml:"dpi" validate:"gt=0"`
	WidthIn      float64 `yaml:"width_in" validate:"gt=0"`
	HeightIn     float64 `yaml:"height_in" validate:"gt=0"`
	XMin         float64 `yaml:"x_min"`
	XMax         float64 `yaml:"x_max" validate:"gtfield=XMin"`
	Strict       bool    `yaml:"strict" env:"ISINGVIZ_STRICT"`
}

type AnimationConfig struct {
	Input     string `yaml:"input" env:"ISINGVIZ_SNAPSHOTS" validate:"required"`
	Output    string `yaml:"output" env:"ISINGVIZ_ANIMATION" validate:"required"`
	Grid      int    `yaml:"grid" env:"ISINGVIZ_GRID" validate:"gt=0"`
	FPS       int    `yaml:"fps" validate:"gt=0,lte=100"`
	Format    string `yaml:"format" validate:"oneof=gif avi"`
	CellSize  int    `yaml:"cell_size" validate:"gt=0"`
	UpColor   string `yaml:"up_color" validate:"hexcolor"`
	DownColor string `yaml:"down_color" validate:"hexcolor"`
	Caption   bool   `yaml:"caption"`
}

func DefaultConfig() *Config {
	return &Config{
		Scaling: ScalingConfig{
			Tc:      DefaultTc,
			Gamma:   DefaultGamma,
			Nu:      DefaultNu,
			Sizes:   append([]int(nil), DefaultSizes...),
			Palette: append([]string(nil), DefaultPalette...),
		},
		Collapse: CollapseConfig{
			DataDir:      ".",
			TablePattern: DefaultTablePattern,
			Mode:         "save",
			Output:       DefaultFigurePath,
			DPI:          DefaultDPI,
			WidthIn:      DefaultWidthIn,
			HeightIn:     DefaultHeightIn,
			XMin:         DefaultXMin,
			XMax:         DefaultXMax,
		},
		Animation: AnimationConfig{
			Input:     DefaultSnapshotPath,
			Output:    DefaultAnimationPath,
			Grid:      DefaultGrid,
			FPS:       DefaultFPS,
			Format:    "gif",
			CellSize:  DefaultCellSize,
			UpColor:   "#000000",
			DownColor: "#ffffff",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from ISINGVIZ_* variables. Unset variables leave
// the current values alone.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the struct tags. Palette exhaustion is left to the legend
// so it is reported with the offending size.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
