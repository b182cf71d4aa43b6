package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/magcot/magcot/internal/config"
	"github.com/magcot/magcot/pkg/annotation"
	"github.com/magcot/magcot/pkg/resource"
)

// buildRegistry defines the configured namespaces, then the ones given on
// the command line as ns=path, which win over the config.
func buildRegistry(configured map[string]string, flags []string) (*resource.Registry, error) {
	reg := resource.NewRegistry()

	names := make([]string, 0, len(configured))
	for ns := range configured {
		names = append(names, ns)
	}
	sort.Strings(names)
	for _, ns := range names {
		if err := reg.Define(ns, configured[ns]); err != nil {
			return nil, fmt.Errorf("namespace %q from config: %w", ns, err)
		}
	}

	for _, f := range flags {
		ns, dir, ok := strings.Cut(f, "=")
		if !ok || ns == "" || dir == "" {
			return nil, fmt.Errorf("bad --namespace %q, expected ns=path", f)
		}
		if err := reg.Define(ns, dir); err != nil {
			return nil, fmt.Errorf("namespace %q: %w", ns, err)
		}
	}
	return reg, nil
}

// sessionOptions turns the configuration into session options.
func (a *app) sessionOptions() []annotation.Option {
	mc := config.GetMarkupConfig()
	sc := config.GetStatementConfig()

	opts := []annotation.Option{
		annotation.WithRegistry(a.registry),
		annotation.WithLogger(a.logger),
		annotation.WithZIndex(mc.PointZ, mc.PatchZ),
		annotation.WithElementStep(mc.ElementStep),
		annotation.WithOrdinalStyle(mc.OrdinalStyle),
		annotation.WithColorSeed(mc.ColorSeed),
		annotation.WithStatementTemplate(annotation.StatementTemplate{
			Prefixes:  sc.Prefixes,
			Signature: annotation.Signature(sc.Signature),
			Sign:      sc.Sign,
			New:       sc.New,
			Semicolon: sc.Semicolon,
		}),
	}
	if len(mc.ColorSeries) > 0 {
		opts = append(opts, annotation.WithColorSeries(mc.ColorSeries...))
	}
	return opts
}

// renderSettings are the per-run choices of the export handlers. Empty
// fields fall back to the configuration.
type renderSettings struct {
	Order    string
	Coloring string
	Indent   int
	Lang     string
	Embed    *bool
}

func (r renderSettings) statementOrder() annotation.StatementOrder {
	if r.Order != "" {
		return annotation.StatementOrder(r.Order)
	}
	return annotation.StatementOrder(config.GetStatementConfig().Order)
}

func (r renderSettings) coloring() annotation.Coloring {
	if r.Coloring != "" {
		return annotation.Coloring(r.Coloring)
	}
	return annotation.Coloring(config.GetMarkupConfig().Coloring)
}

func (r renderSettings) pageOptions() annotation.PageOptions {
	pc := config.GetPageConfig()
	opts := annotation.PageOptions{Lang: pc.Lang, Embed: pc.Embed}
	if r.Lang != "" {
		opts.Lang = r.Lang
	}
	if r.Embed != nil {
		opts.Embed = *r.Embed
	}
	return opts
}
