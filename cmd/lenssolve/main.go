// Command lenssolve finds the multiple images of a point source for an
// analytic lens model.
//
// Usage:
//
//	lenssolve [flags]
//
// The problem is read from a JSON file given by -config (see
// internal/config for the schema); flags override individual values.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"honnef.co/go/lenseq"
	"honnef.co/go/lenseq/internal/config"
	"honnef.co/go/lenseq/internal/render"
	"honnef.co/go/lenseq/lensmodel"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// result is the JSON output of a solve.
type result struct {
	Beta     [2]float64   `json:"beta"`
	Images   [][2]float64 `json:"images"`
	Sources  [][2]float64 `json:"sources"`
	Accuracy float64      `json:"accuracy"`
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "lenssolve: ", log.LstdFlags)

	fs := flag.NewFlagSet("lenssolve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "JSON problem description (optional, defaults are used otherwise)")
	betaX := fs.Float64("beta-x", 0, "source position x (overrides config)")
	betaY := fs.Float64("beta-y", 0, "source position y (overrides config)")
	nsolutions := fs.Int("nsolutions", 0, "number of images to return (overrides config)")
	niter := fs.Int("niter", -1, "number of refinement rounds (overrides config)")
	scaleFactor := fs.Float64("scale-factor", 0, "area inflation per round (overrides config)")
	nsubdivisions := fs.Int("nsubdivisions", 0, "subdivisions per round (overrides config)")
	plotPath := fs.String("plot", "", "write a plot of the solutions to this file (png, svg, pdf)")
	asJSON := fs.Bool("json", false, "print results as JSON")
	verbose := fs.Bool("v", false, "log refinement progress")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.ReadConfig(*configPath)
		if err != nil {
			logger.Printf("failed to load config: %v", err)
			return 1
		}
	}

	// Only flags given on the command line override the config, which is
	// validated once they are applied.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "beta-x":
			cfg.BetaX = betaX
		case "beta-y":
			cfg.BetaY = betaY
		case "nsolutions":
			cfg.NSolutions = nsolutions
		case "niter":
			cfg.NIter = niter
		case "scale-factor":
			cfg.ScaleFactor = scaleFactor
		case "nsubdivisions":
			cfg.NSubdivisions = nsubdivisions
		}
	})
	if err := cfg.Validate(); err != nil {
		logger.Printf("invalid configuration: %v", err)
		return 1
	}

	xs, ys := cfg.GridCenters()
	gridX, gridY := lenseq.Meshgrid(xs, ys)
	solver, err := lenseq.NewSolver[lensmodel.Model](gridX, gridY, lensmodel.ShootRays)
	if err != nil {
		logger.Printf("failed to create solver: %v", err)
		return 1
	}

	opts := cfg.SolveOptions()
	if *verbose {
		opts.Logger = logger
	}
	beta := cfg.GetBeta()
	lens := cfg.GetLens()
	images, sources, err := solver.SolveOpt(beta, lens, opts)
	if err != nil {
		logger.Printf("solve failed: %v", err)
		return 1
	}
	accuracy := solver.EstimateAccuracy(opts.NIter, opts.ScaleFactor, opts.NSubdivisions)

	if *asJSON {
		res := result{
			Beta:     [2]float64{beta.X, beta.Y},
			Images:   make([][2]float64, len(images)),
			Sources:  make([][2]float64, len(sources)),
			Accuracy: accuracy,
		}
		for i := range images {
			res.Images[i] = [2]float64{images[i].X, images[i].Y}
			res.Sources[i] = [2]float64{sources[i].X, sources[i].Y}
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			logger.Printf("failed to write results: %v", err)
			return 1
		}
	} else {
		fmt.Fprintf(stdout, "source %s, grid %s, pixel scale %g, accuracy %g\n",
			beta, solver.Grid().Bounds(), solver.Grid().PixelScale(), accuracy)
		for i := range images {
			fmt.Fprintf(stdout, "%d\timage %s\tsource %s\toffset %g\n",
				i, images[i], sources[i], sources[i].Distance(beta))
		}
	}

	if *plotPath != "" {
		scene := render.Scene{
			Title:   fmt.Sprintf("images of β = %s", beta),
			Bounds:  solver.Grid().Bounds(),
			Beta:    beta,
			Images:  images,
			Sources: sources,
		}
		if err := render.Save(*plotPath, scene); err != nil {
			logger.Printf("failed to plot: %v", err)
			return 1
		}
		logger.Printf("wrote %s", *plotPath)
	}
	return 0
}
