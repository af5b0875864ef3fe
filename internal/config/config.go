package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"honnef.co/go/lenseq"
	"honnef.co/go/lenseq/lensmodel"
)

// Config describes a lens-equation problem: the image-plane grid to search,
// the source position, the refinement schedule and the lens model. Fields
// omitted from a JSON file are nil and fall back to the defaults returned by
// the Get* methods.
type Config struct {
	// Grid params
	XMin    *float64 `json:"x_min,omitempty"`
	XMax    *float64 `json:"x_max,omitempty"`
	YMin    *float64 `json:"y_min,omitempty"`
	YMax    *float64 `json:"y_max,omitempty"`
	NumPixX *int     `json:"num_pix_x,omitempty"`
	NumPixY *int     `json:"num_pix_y,omitempty"`

	// Source position
	BetaX *float64 `json:"beta_x,omitempty"`
	BetaY *float64 `json:"beta_y,omitempty"`

	// Solver params
	NSolutions    *int     `json:"nsolutions,omitempty"`
	NIter         *int     `json:"niter,omitempty"`
	ScaleFactor   *float64 `json:"scale_factor,omitempty"`
	NSubdivisions *int     `json:"nsubdivisions,omitempty"`

	Lens *lensmodel.Model `json:"lens,omitempty"`
}

// Defaults used when a field is nil.
const (
	DefaultHalfWidth = 3.0
	DefaultNumPix    = 100
	DefaultBetaX     = 0.05
	DefaultBetaY     = 0.02
)

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }

// DefaultConfig returns a Config with every field set: a 100×100 grid over
// [-3, 3]², a source slightly off the lens axis, the default solve options
// and a unit-radius SIS with a small external shear.
func DefaultConfig() *Config {
	opts := lenseq.DefaultSolveOptions()
	return &Config{
		XMin:          ptrFloat64(-DefaultHalfWidth),
		XMax:          ptrFloat64(DefaultHalfWidth),
		YMin:          ptrFloat64(-DefaultHalfWidth),
		YMax:          ptrFloat64(DefaultHalfWidth),
		NumPixX:       ptrInt(DefaultNumPix),
		NumPixY:       ptrInt(DefaultNumPix),
		BetaX:         ptrFloat64(DefaultBetaX),
		BetaY:         ptrFloat64(DefaultBetaY),
		NSolutions:    ptrInt(opts.NSolutions),
		NIter:         ptrInt(opts.NIter),
		ScaleFactor:   ptrFloat64(opts.ScaleFactor),
		NSubdivisions: ptrInt(opts.NSubdivisions),
		Lens:          defaultLens(),
	}
}

func defaultLens() *lensmodel.Model {
	return &lensmodel.Model{
		Components: []lensmodel.Component{
			lensmodel.SIS(1, lenseq.Pt(0, 0)),
			lensmodel.Shear(0.05, 0.02),
		},
	}
}

// LoadConfig loads a Config from a JSON file and validates it. The file must
// have a .json extension and be at most 1 MiB.
func LoadConfig(path string) (*Config, error) {
	cfg, err := ReadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ReadConfig is like LoadConfig but doesn't validate the result, for callers
// that override fields before calling Validate.
func ReadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	if c.GetXMin() >= c.GetXMax() {
		return fmt.Errorf("x_min must be less than x_max, got %g and %g", c.GetXMin(), c.GetXMax())
	}
	if c.GetYMin() >= c.GetYMax() {
		return fmt.Errorf("y_min must be less than y_max, got %g and %g", c.GetYMin(), c.GetYMax())
	}
	if c.GetNumPixX() < 2 || c.GetNumPixY() < 1 {
		return fmt.Errorf("grid must have at least 2×1 pixels, got %d×%d", c.GetNumPixX(), c.GetNumPixY())
	}
	// The solver assumes square pixels.
	bounds := c.GridBounds()
	dx := bounds.Width() / float64(c.GetNumPixX())
	dy := bounds.Height() / float64(c.GetNumPixY())
	if d := dx - dy; d > 1e-9*dx || d < -1e-9*dx {
		return fmt.Errorf("pixels must be square, got %g×%g", dx, dy)
	}
	if err := c.SolveOptions().Validate(); err != nil {
		return err
	}
	if err := c.GetLens().Validate(); err != nil {
		return fmt.Errorf("lens: %w", err)
	}
	return nil
}

func getFloat64(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func getInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func (c *Config) GetXMin() float64 { return getFloat64(c.XMin, -DefaultHalfWidth) }
func (c *Config) GetXMax() float64 { return getFloat64(c.XMax, DefaultHalfWidth) }
func (c *Config) GetYMin() float64 { return getFloat64(c.YMin, -DefaultHalfWidth) }
func (c *Config) GetYMax() float64 { return getFloat64(c.YMax, DefaultHalfWidth) }
func (c *Config) GetNumPixX() int  { return getInt(c.NumPixX, DefaultNumPix) }
func (c *Config) GetNumPixY() int  { return getInt(c.NumPixY, DefaultNumPix) }

// GetBeta returns the source position.
func (c *Config) GetBeta() lenseq.Point {
	return lenseq.Pt(getFloat64(c.BetaX, DefaultBetaX), getFloat64(c.BetaY, DefaultBetaY))
}

// GetLens returns the lens model, or the default SIS plus shear.
func (c *Config) GetLens() lensmodel.Model {
	if c.Lens == nil {
		return *defaultLens()
	}
	return *c.Lens
}

// SolveOptions returns the refinement schedule, without a logger.
func (c *Config) SolveOptions() lenseq.SolveOptions {
	def := lenseq.DefaultSolveOptions()
	return lenseq.SolveOptions{
		NSolutions:    getInt(c.NSolutions, def.NSolutions),
		NIter:         getInt(c.NIter, def.NIter),
		ScaleFactor:   getFloat64(c.ScaleFactor, def.ScaleFactor),
		NSubdivisions: getInt(c.NSubdivisions, def.NSubdivisions),
	}
}

// GridBounds returns the image-plane region to search.
func (c *Config) GridBounds() lenseq.Rect {
	return lenseq.Rect{X0: c.GetXMin(), Y0: c.GetYMin(), X1: c.GetXMax(), Y1: c.GetYMax()}
}

// GridCenters returns the pixel centers of the search grid along each axis.
func (c *Config) GridCenters() (xs, ys []float64) {
	xs = lenseq.PixelCenters(c.GetXMin(), c.GetXMax(), c.GetNumPixX())
	ys = lenseq.PixelCenters(c.GetYMin(), c.GetYMax(), c.GetNumPixY())
	return xs, ys
}
