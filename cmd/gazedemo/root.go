package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/phanxgames/gaze"
	"github.com/phanxgames/gaze/ebitenrender"
)

var errHeadlessScript = errors.New("--headless needs --script")

type options struct {
	configPath string
	scriptPath string
	headless   bool
	width      int
	height     int
	tps        int
	debug      bool
	showFPS    bool
}

func bindFlags(fs *pflag.FlagSet, o *options) {
	fs.StringVarP(&o.configPath, "config", "c", "", "YAML file overriding the default tunables")
	fs.StringVarP(&o.scriptPath, "script", "s", "", "JSON gaze script to replay")
	fs.BoolVar(&o.headless, "headless", false, "replay the script without opening a window")
	fs.IntVar(&o.width, "width", 1024, "layout width in pixels")
	fs.IntVar(&o.height, "height", 640, "layout height in pixels")
	fs.IntVar(&o.tps, "tps", 60, "ticks per second of a headless replay")
	fs.BoolVar(&o.debug, "debug", false, "enable debug mode and verbose logging")
	fs.BoolVar(&o.showFPS, "fps", false, "show an FPS overlay")
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:           "gazedemo",
		Short:         "Dwell keyboard demo for the gaze scene graph",
		Long:          "gazedemo opens a window where the mouse cursor stands in for an eye tracker, or replays a JSON gaze script headlessly and prints every notification.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &o)
		},
	}
	bindFlags(cmd.Flags(), &o)
	return cmd
}

func run(cmd *cobra.Command, o *options) error {
	if o.headless && o.scriptPath == "" {
		return errHeadlessScript
	}
	if o.width <= 0 || o.height <= 0 || o.tps <= 0 {
		return fmt.Errorf("width, height and tps must be positive")
	}
	logger := newLogger(cmd.ErrOrStderr(), o.debug)

	cfg := gaze.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = gaze.LoadConfig(o.configPath); err != nil {
			return err
		}
	}

	d, err := newDemo(o.width, o.height, cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	d.layout.SetLogger(logger)
	d.layout.SetDebugMode(o.debug)

	var script *gaze.GazeScript
	if o.scriptPath != "" {
		data, err := os.ReadFile(o.scriptPath)
		if err != nil {
			return fmt.Errorf("reading script: %w", err)
		}
		if script, err = gaze.LoadGazeScript(data); err != nil {
			return err
		}
	}

	if o.headless {
		d.layout.SetEventSink(printSink{w: cmd.OutOrStdout()})
		frames := script.Run(d.layout, 1/float64(o.tps), nil)
		logger.Info("script finished", "frames", frames)
		fmt.Fprintf(cmd.OutOrStdout(), "typed: %q\n", d.text.String())
		return nil
	}

	logger.Info("opening window", "width", o.width, "height", o.height)
	return ebitenrender.Run(d.layout, ebitenrender.RunConfig{
		Title:   "gazedemo",
		Script:  script,
		ShowFPS: o.showFPS,
		Styles:  demoStyles,
	})
}

var demoStyles = map[string]ebitenrender.Style{
	"output": {
		Background: gaze.Color{R: 0.05, G: 0.05, B: 0.08, A: 1},
		Foreground: gaze.ColorWhite,
	},
	"sensor": {
		Background: gaze.Color{R: 0.1, G: 0.25, B: 0.2, A: 1},
		Highlight:  gaze.Color{R: 1, G: 1, B: 1, A: 0.3},
		Dim:        gaze.Color{A: 0.4},
		Progress:   gaze.Color{R: 0.3, G: 1, B: 0.6, A: 0.9},
	},
	"button": ebitenrender.DefaultStyle,
	"keys": {
		Background: gaze.Color{R: 0.2, G: 0.2, B: 0.25, A: 1},
		Foreground: gaze.ColorWhite,
		Highlight:  gaze.Color{R: 0.2, G: 0.6, B: 1, A: 0.8},
		Dim:        gaze.Color{A: 0.4},
		Progress:   gaze.Color{R: 0.2, G: 0.7, B: 1, A: 0.8},
	},
	"panel": {
		Background: gaze.Color{R: 0.3, G: 0.3, B: 0.35, A: 0.95},
		Foreground: gaze.ColorWhite,
	},
}
