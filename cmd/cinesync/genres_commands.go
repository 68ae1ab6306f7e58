package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"cinesync/internal/cms"
	"cinesync/internal/genres"
	"cinesync/internal/sync"
	"cinesync/internal/tmdb"
)

func newGenresCommand(ctx *commandContext) *cobra.Command {
	genresCmd := &cobra.Command{
		Use:   "genres",
		Short: "Manage the TMDB-to-CMS genre mapping",
	}
	genresCmd.AddCommand(newGenresSeedCommand(ctx))
	genresCmd.AddCommand(newGenresListCommand(ctx))
	return genresCmd
}

func newGenresSeedCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create one CMS genre item per TMDB genre and write the mapping file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			catalog, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
			if err != nil {
				return fmt.Errorf("build tmdb client: %w", err)
			}
			sink, err := cms.New(cfg.CMS.APIToken, cfg.CMS.BaseURL,
				time.Duration(cfg.CMS.RequestTimeout)*time.Second)
			if err != nil {
				return fmt.Errorf("build cms client: %w", err)
			}

			taxonomy, err := catalog.MovieGenres(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			mappings := make([]genres.Mapping, 0, len(taxonomy))
			for _, genre := range taxonomy {
				item, err := sink.CreateItem(cmd.Context(), cfg.CMS.GenresCollectionID, cms.GenreFields{
					Name: genre.Name,
					Slug: sync.Slugify(genre.Name),
				})
				if err != nil {
					return fmt.Errorf("create genre item %q: %w", genre.Name, err)
				}
				mappings = append(mappings, genres.Mapping{
					TMDBID: genre.ID,
					Name:   genre.Name,
					ItemID: item.ID,
				})
				fmt.Fprintf(out, "Created genre %s (%s)\n", genre.Name, item.ID)
			}

			if err := genres.Save(cfg.Genres.MappingPath, mappings); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %d genre mappings to %s\n", len(mappings), cfg.Genres.MappingPath)
			return nil
		},
	}
}

func newGenresListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the genre mapping file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			table, err := genres.Load(cfg.Genres.MappingPath)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, table.Len())
			for _, mapping := range table.Mappings() {
				rows = append(rows, []string{
					strconv.FormatInt(mapping.TMDBID, 10),
					mapping.Name,
					mapping.ItemID,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				renderTable([]string{"TMDB ID", "Name", "CMS Item"}, rows, 1))
			return nil
		},
	}
}
