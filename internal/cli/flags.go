package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrdots/pkg/pipeline"
)

// optionFlags binds pipeline options to command flags. Only flags the user
// set override values from the config file.
type optionFlags struct {
	opts    pipeline.Options
	formats string
	margin  float64
}

// flagFields copies one flag-backed field from src to dst.
var flagFields = map[string]func(dst *pipeline.Options, src *optionFlags){
	"level":       func(d *pipeline.Options, s *optionFlags) { d.Level = s.opts.Level },
	"refresh":     func(d *pipeline.Options, s *optionFlags) { d.Refresh = s.opts.Refresh },
	"block-size":  func(d *pipeline.Options, s *optionFlags) { d.BlockSize = s.opts.BlockSize },
	"corner-size": func(d *pipeline.Options, s *optionFlags) { d.CornerMarkerSize = s.opts.CornerMarkerSize },
	"center-size": func(d *pipeline.Options, s *optionFlags) { d.CenterExclusionSize = s.opts.CenterExclusionSize },
	"format":      func(d *pipeline.Options, s *optionFlags) { d.Formats = parseFormats(s.formats) },
	"style":       func(d *pipeline.Options, s *optionFlags) { d.Style = s.opts.Style },
	"fg":          func(d *pipeline.Options, s *optionFlags) { d.Foreground = s.opts.Foreground },
	"bg":          func(d *pipeline.Options, s *optionFlags) { d.Background = s.opts.Background },
	"overlay":     func(d *pipeline.Options, s *optionFlags) { d.Overlay = s.opts.Overlay },
	"scale":       func(d *pipeline.Options, s *optionFlags) { d.Scale = s.opts.Scale },
	"margin": func(d *pipeline.Options, s *optionFlags) {
		m := s.margin
		d.Margin = &m
	},
}

func (f *optionFlags) addEncodeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.opts.Level, "level", "l", "", "error recovery level: low, medium (default), high, highest")
	cmd.Flags().BoolVar(&f.opts.Refresh, "refresh", false, "re-encode even when the grid is cached")
	_ = cmd.RegisterFlagCompletionFunc("level", completeLevels)
}

func (f *optionFlags) addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.opts.BlockSize, "block-size", 0, "module edge length in pixels (default 10)")
	cmd.Flags().IntVar(&f.opts.CornerMarkerSize, "corner-size", 0, "finder corner edge length in modules (default 7)")
	cmd.Flags().Float64Var(&f.opts.CenterExclusionSize, "center-size", 0, "center exclusion edge length in pixels (default 70)")
}

func (f *optionFlags) addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&f.opts.Style, "style", "", "visual style: dots (default), rounded")
	cmd.Flags().StringVar(&f.opts.Foreground, "fg", "", "foreground colour (default #000000)")
	cmd.Flags().StringVar(&f.opts.Background, "bg", "", "background colour (default #ffffff)")
	cmd.Flags().StringVar(&f.opts.Overlay, "overlay", "", "image file or http(s) URL placed in the center zone")
	cmd.Flags().Float64Var(&f.opts.Scale, "scale", 0, "PNG pixels per layout unit (default 2)")
	cmd.Flags().Float64Var(&f.margin, "margin", 0, "margin around the plate in pixels (default one block)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("style", completeStyles)
}

// options merges config file values with the flags the user set.
func (c *CLI) options(cmd *cobra.Command, f *optionFlags, payload string) pipeline.Options {
	opts := c.Config.Options()
	for name, apply := range flagFields {
		if flag := cmd.Flags().Lookup(name); flag != nil && flag.Changed {
			apply(&opts, f)
		}
	}
	opts.Payload = payload
	opts.Logger = c.Logger
	return opts
}
