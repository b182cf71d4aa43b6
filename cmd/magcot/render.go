package main

import (
	"fmt"

	"github.com/magcot/magcot/pkg/annotation"

	"github.com/spf13/cobra"
)

// addRenderFlags binds the flags shared by render and archive load.
func addRenderFlags(cmd *cobra.Command, out *outputs, rs *renderSettings, embed *bool) {
	flags := cmd.Flags()
	flags.StringVar(&out.Document, "json", "", "write the document to `path`")
	flags.StringVar(&out.Statement, "java", "", "write the statement fragment to `path`")
	flags.StringVar(&out.Markup, "html", "", "write the overlay fragment to `path`")
	flags.StringVar(&out.Page, "page", "", "write a standalone preview page to `path`")
	flags.StringVar(&rs.Order, "order", "", "statement order: class or elementorder")
	flags.StringVar(&rs.Coloring, "coloring", "", "overlay coloring: groupwise or order")
	flags.IntVar(&rs.Indent, "indent", 0, "indent the overlay fragment by this many tabs")
	flags.StringVar(&rs.Lang, "lang", "", "preview page language")
	flags.BoolVar(embed, "embed", true, "embed styles, scripts and textures into the page")
}

// applyEmbed keeps the configured embed mode unless --embed was given.
func applyEmbed(cmd *cobra.Command, rs *renderSettings, embed bool) {
	if cmd.Flags().Changed("embed") {
		rs.Embed = &embed
	}
}

// runExports writes the requested outputs, or the document to stdout when
// none was requested.
func (a *app) runExports(cmd *cobra.Command, s *annotation.Session, rs renderSettings, out outputs) error {
	if len(out.events()) == 0 {
		return s.EncodeDocument(cmd.OutOrStdout())
	}
	written, err := a.export(s, rs, out)
	for _, p := range written {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return err
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		out   outputs
		rs    renderSettings
		embed bool
	)

	cmd := &cobra.Command{
		Use:   "render DOCUMENT",
		Short: "Render a document as JSON, statements, overlay markup or a preview page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyEmbed(cmd, &rs, embed)

			s, err := annotation.LoadDocument(args[0], a.sessionOptions()...)
			if err != nil {
				return err
			}
			a.logger.Info("Loaded document", "path", args[0], "elements", s.Len(), "textures", len(s.TextureNames()))
			return a.runExports(cmd, s, rs, out)
		},
	}
	addRenderFlags(cmd, &out, &rs, &embed)
	return cmd
}
