package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	recordsrender "github.com/bnema/offline-cache/internal/adapters/render/records"
	"github.com/bnema/offline-cache/internal/adapters/repo/schema"
	"github.com/bnema/offline-cache/internal/application"
	"github.com/bnema/offline-cache/internal/domain"
	"github.com/spf13/cobra"
)

// recordCommand describes one record kind for the shared list/show/fav/delete/clear/import commands.
type recordCommand[K domain.Key, R domain.Record[K, R], S any] struct {
	singular string
	codec    schema.Codec[K, R, S]
	parse    func(string) (K, error)
	records  *application.Collection[K, R]
	rows     func([]R) []recordsrender.Row
}

func newDesignCmd(app *app) *cobra.Command {
	return newRecordCmd(app, recordCommand[domain.DesignID, domain.Design, schema.Item]{
		singular: "design",
		codec:    schema.Designs,
		parse:    domain.ParseDesignID,
		records:  app.store.Designs,
		rows:     recordsrender.DesignRows,
	})
}

func newArtworkCmd(app *app) *cobra.Command {
	return newRecordCmd(app, recordCommand[domain.ArtworkID, domain.Artwork, schema.Item]{
		singular: "artwork",
		codec:    schema.Artworks,
		parse:    domain.ParseArtworkID,
		records:  app.store.Artworks,
		rows:     recordsrender.ArtworkRows,
	})
}

func newRecordCmd[K domain.Key, R domain.Record[K, R], S any](app *app, rc recordCommand[K, R, S]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   rc.singular,
		Short: fmt.Sprintf("Inspect and edit cached %s", rc.codec.Kind),
	}

	cmd.AddCommand(
		newRecordListCmd(app, rc),
		newRecordShowCmd(app, rc),
		newRecordFavCmd(app, rc),
		newRecordDeleteCmd(app, rc),
		newRecordClearCmd(app, rc),
		newRecordImportCmd(app, rc),
	)

	return cmd
}

func newRecordListCmd[K domain.Key, R domain.Record[K, R], S any](app *app, rc recordCommand[K, R, S]) *cobra.Command {
	var favorites bool
	var pending bool
	var asJSON bool
	var staleAfter time.Duration

	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List cached %s", rc.codec.Kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}

			var records []R
			switch {
			case favorites:
				records = rc.records.GetFavorites(ctx)
			case pending:
				records = rc.records.Pending(ctx)
			default:
				records = rc.records.GetAll(ctx)
			}

			if asJSON {
				encoded := make([]S, 0, len(records))
				for _, record := range records {
					encoded = append(encoded, rc.codec.Encode(record))
				}
				return writeJSON(cmd.OutOrStdout(), encoded)
			}

			rendered, err := app.render(rc.rows(records), recordsrender.RenderOptions{
				Kind:       rc.codec.Kind,
				Now:        app.now(),
				StaleAfter: staleAfter,
			})
			if err != nil {
				return fmt.Errorf("render %s: %w", rc.codec.Kind, err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&favorites, "favorites", false, "Only favorite records")
	cmd.Flags().BoolVar(&pending, "pending", false, "Only records waiting to be pushed")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")
	cmd.Flags().DurationVar(&staleAfter, "stale-after", 7*24*time.Hour, "Flag records synced longer ago than this (0 disables)")
	cmd.MarkFlagsMutuallyExclusive("favorites", "pending")

	return cmd
}

func newRecordShowCmd[K domain.Key, R domain.Record[K, R], S any](app *app, rc recordCommand[K, R, S]) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: fmt.Sprintf("Print one cached %s as JSON", rc.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}

			record, err := getRecord(ctx, rc, args[0])
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), rc.codec.Encode(record))
		},
	}
}

func newRecordFavCmd[K domain.Key, R domain.Record[K, R], S any](app *app, rc recordCommand[K, R, S]) *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "fav ID",
		Short: fmt.Sprintf("Mark a %s as favorite", rc.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}

			record, err := getRecord(ctx, rc, args[0])
			if err != nil {
				return err
			}

			if err := rc.records.Put(ctx, domain.ToggleFavorite(record, !off)); err != nil {
				return err
			}

			state := "on"
			if off {
				state = "off"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s: favorite %s (pending sync)\n", rc.singular, record.Key(), state)
			return err
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Remove the favorite mark instead")

	return cmd
}

func newRecordDeleteCmd[K domain.Key, R domain.Record[K, R], S any](app *app, rc recordCommand[K, R, S]) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: fmt.Sprintf("Remove a %s from the cache", rc.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}

			id, err := rc.parse(args[0])
			if err != nil {
				return err
			}

			if err := rc.records.Delete(ctx, id); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %s\n", rc.singular, id)
			return err
		},
	}
}

func newRecordClearCmd[K domain.Key, R domain.Record[K, R], S any](app *app, rc recordCommand[K, R, S]) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: fmt.Sprintf("Remove every cached %s", rc.singular),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}

			if err := rc.records.Clear(ctx); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", rc.codec.Kind)
			return err
		},
	}
}

func newRecordImportCmd[K domain.Key, R domain.Record[K, R], S any](app *app, rc recordCommand[K, R, S]) *cobra.Command {
	var pending bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: fmt.Sprintf("Upsert %s from a JSON array (- reads stdin)", rc.codec.Kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			var payload []S
			if err := json.Unmarshal(data, &payload); err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			records := make([]R, 0, len(payload))
			for _, item := range payload {
				record := rc.codec.Decode(item)
				if pending {
					record = domain.MarkDirty(record)
				}
				records = append(records, record)
			}

			ctx, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := rc.records.PutAll(ctx, records); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d %s\n", len(records), rc.codec.Kind)
			return err
		},
	}

	cmd.Flags().BoolVar(&pending, "pending", false, "Mark imported records as waiting to be pushed")

	return cmd
}

func getRecord[K domain.Key, R domain.Record[K, R], S any](ctx context.Context, rc recordCommand[K, R, S], raw string) (R, error) {
	var zero R

	id, err := rc.parse(raw)
	if err != nil {
		return zero, err
	}

	record, ok := rc.records.Get(ctx, id)
	if !ok {
		return zero, fmt.Errorf("%s %s: %w", rc.singular, id, domain.ErrRecordNotFound)
	}

	return record, nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
