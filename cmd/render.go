package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/guttosm/badge-service/internal/app"
	"github.com/guttosm/badge-service/internal/badge"
)

type renderOptions struct {
	label   string
	version string
}

func (o *renderOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.label, "label", "l", "", "text of the left box, usually the package name")
	fs.StringVarP(&o.version, "version", "v", "", "version shown in the right box, without the leading v")
}

func newRenderCmd(c *cli) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write a badge SVG to stdout",
		Long: `Render a badge with the configured appearance. Nothing is fetched;
label and version are used as given.`,
		Example: "  badge-service render --label fmt --version 10.2.1 > fmt.svg",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appearance, err := app.BuildAppearance(c.cfg.Appearance)
			if err != nil {
				return err
			}
			svg, err := badge.NewRenderer().Render(opts.label, opts.version, appearance)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), svg)
			return err
		},
	}
	opts.addFlags(cmd.Flags())
	_ = cmd.MarkFlagRequired("label")
	_ = cmd.MarkFlagRequired("version")
	return cmd
}
