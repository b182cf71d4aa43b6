package main

import (
	"bytes"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/magcot/magcot/internal/archive"
	"github.com/magcot/magcot/internal/archive/snapshot"
	"github.com/magcot/magcot/internal/config"
	"github.com/magcot/magcot/pkg/annotation"

	"github.com/spf13/cobra"
)

// openArchive creates and initializes the configured backend.
func (a *app) openArchive() (archive.Backend, error) {
	cfg := config.GetArchiveConfig()
	backend, err := archive.NewBackend(cfg, a.dbLogger)
	if err != nil {
		a.logger.Error("Failed to create archive backend", "error", err)
		return nil, err
	}
	if err := backend.Init(); err != nil {
		a.logger.Error("Failed to initialize archive backend", "error", err)
		_ = backend.Close()
		return nil, err
	}
	a.logger.Debug("Archive backend initialized", "type", cfg.Type)
	return backend, nil
}

// withArchive runs fn on an open backend and closes it afterwards.
func (a *app) withArchive(fn func(archive.Backend) error) error {
	backend, err := a.openArchive()
	if err != nil {
		return err
	}
	err = fn(backend)
	if cerr := backend.Close(); err == nil {
		err = cerr
	}
	return err
}

func newArchiveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Save, restore and list snapshots of documents",
	}
	cmd.AddCommand(
		newArchiveSaveCmd(a),
		newArchiveLoadCmd(a),
		newArchiveListCmd(a),
		newArchiveDumpCmd(a),
	)
	return cmd
}

func newArchiveSaveCmd(a *app) *cobra.Command {
	var rs renderSettings

	cmd := &cobra.Command{
		Use:   "save NAME DOCUMENT",
		Short: "Store a document with its statement and markup renderings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, docPath := args[0], args[1]
			s, err := annotation.LoadDocument(docPath, a.sessionOptions()...)
			if err != nil {
				return err
			}
			snap, err := snapshot.Capture(name, s, rs.statementOrder(), rs.coloring(), time.Now())
			if err != nil {
				return err
			}
			return a.withArchive(func(b archive.Backend) error {
				if err := b.Save(snap); err != nil {
					return err
				}
				a.logger.Info("Saved snapshot", "name", name, "document", docPath, "elements", s.Len())
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", snap.Name, snap.CreatedAt.Format(time.RFC3339))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&rs.Order, "order", "", "statement order: class or elementorder")
	cmd.Flags().StringVar(&rs.Coloring, "coloring", "", "overlay coloring: groupwise or order")
	return cmd
}

func newArchiveLoadCmd(a *app) *cobra.Command {
	var (
		out   outputs
		rs    renderSettings
		embed bool
	)

	cmd := &cobra.Command{
		Use:   "load NAME",
		Short: "Restore the newest snapshot of NAME and render it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyEmbed(cmd, &rs, embed)

			var snap *snapshot.Snapshot
			err := a.withArchive(func(b archive.Backend) error {
				var err error
				snap, err = b.Load(args[0])
				return err
			})
			if err != nil {
				return err
			}

			s, err := annotation.ReadDocument(bytes.NewReader(snap.Document), a.sessionOptions()...)
			if err != nil {
				return fmt.Errorf("snapshot %q: %w", snap.Name, err)
			}
			a.logger.Info("Restored snapshot", "name", snap.Name, "created", snap.CreatedAt, "elements", s.Len())
			return a.runExports(cmd, s, rs, out)
		},
	}
	addRenderFlags(cmd, &out, &rs, &embed)
	return cmd
}

func newArchiveListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the newest snapshot of each name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withArchive(func(b archive.Backend) error {
				infos, err := b.List()
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, info := range infos {
					fmt.Fprintf(w, "%s\t%s\n", info.Name, info.CreatedAt.Format(time.RFC3339))
				}
				return w.Flush()
			})
		},
	}
}

func newArchiveDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump FILE",
		Short: "Copy a sqlite archive database to FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withArchive(func(b archive.Backend) error {
				d, ok := b.(archive.Dumper)
				if !ok {
					return fmt.Errorf("the %s archive cannot be dumped", config.GetArchiveConfig().Type)
				}
				return d.Dump(args[0])
			})
		},
	}
}
