package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/amaumene/mediacatalog/internal/catalog"
	"github.com/amaumene/mediacatalog/internal/config"
	"github.com/amaumene/mediacatalog/internal/models"
	"github.com/amaumene/mediacatalog/internal/utils"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// itemFlags are the writable item fields shared by add and edit
type itemFlags struct {
	title    string
	category string
	status   string
	rating   int
	notes    string
	cover    string
}

func (f *itemFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Book, Movie, Game, Music or Other")
	cmd.Flags().StringVarP(&f.status, "status", "s", "", "Planned, InProgress or Finished")
	cmd.Flags().IntVarP(&f.rating, "rating", "r", 0, "rating from 0 to 10")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&f.cover, "cover", "", "path to a cover image")
}

// apply copies the flags set on the command line onto fields
func (f *itemFlags) apply(cmd *cobra.Command, fields *models.MediaFields) error {
	changed := cmd.Flags().Changed

	if changed("title") {
		fields.Title = f.title
	}
	if changed("category") {
		c, err := models.ParseCategory(f.category)
		if err != nil {
			return err
		}
		fields.Category = c
	}
	if changed("status") {
		s, err := models.ParseStatus(f.status)
		if err != nil {
			return err
		}
		fields.Status = s
	}
	if changed("rating") {
		fields.Rating = models.IntPtr(f.rating)
	}
	if changed("notes") {
		fields.Notes = models.StringPtr(f.notes)
	}
	if changed("cover") {
		fields.CoverPath = models.StringPtr(f.cover)
	}
	return nil
}

// queryFlags are the filter and sort options shared by list, stats and export
type queryFlags struct {
	search    string
	category  string
	status    string
	minRating int
	sort      string
	order     string
}

func (f *queryFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "q", "", "case-insensitive title substring")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "only this category")
	cmd.Flags().StringVarP(&f.status, "status", "s", "", "only this status")
	cmd.Flags().IntVar(&f.minRating, "min-rating", 0, "only items rated at least this")
	cmd.Flags().StringVar(&f.sort, "sort", "", "title, category, status, rating, created_at or updated_at")
	cmd.Flags().StringVar(&f.order, "order", "", "asc or desc")
}

// query builds the catalog query, falling back to the configured sort
func (f *queryFlags) query(cmd *cobra.Command, cfg *config.Config) (catalog.Query, error) {
	q := cfg.DefaultQuery()
	q.SearchText = strings.TrimSpace(f.search)

	if f.category != "" {
		c, err := models.ParseCategory(f.category)
		if err != nil {
			return q, err
		}
		q.Category = &c
	}
	if f.status != "" {
		s, err := models.ParseStatus(f.status)
		if err != nil {
			return q, err
		}
		q.Status = &s
	}
	if cmd.Flags().Changed("min-rating") {
		if f.minRating < models.MinRating || f.minRating > models.MaxRating {
			return q, &models.ValidationError{Field: "min rating", Message: "must be between 0 and 10"}
		}
		q.MinRating = models.IntPtr(f.minRating)
	}
	if f.sort != "" {
		field, err := catalog.ParseSortField(f.sort)
		if err != nil {
			return q, err
		}
		q.Sort.Field = field
	}
	if f.order != "" {
		order, err := catalog.ParseSortOrder(f.order)
		if err != nil {
			return q, err
		}
		q.Sort.Order = order
	}
	return q, nil
}

func newAddCmd() *cobra.Command {
	var flags itemFlags
	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add an item to the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := models.MediaFields{Title: strings.Join(args, " ")}
			if err := flags.apply(cmd, &fields); err != nil {
				return err
			}

			return withCLI(cmd, func(app *App) error {
				item, err := app.Catalog.Create(fields)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added #%d %s\n", item.ID, item.Title)
				return nil
			})
		},
	}
	flags.bind(cmd)
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newImportAudioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-audio FILE...",
		Short: "Add Music items from the tags of audio files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCLI(cmd, func(app *App) error {
				var failed int
				for _, path := range args {
					fields, err := app.Audio.Read(path)
					if err == nil {
						var item *models.MediaItem
						if item, err = app.Catalog.Create(*fields); err == nil {
							fmt.Fprintf(cmd.OutOrStdout(), "Added #%d %s\n", item.ID, item.Title)
							continue
						}
					}
					failed++
					app.Logger.WithError(err).WithField("path", path).Error("Failed to import audio file")
				}
				if failed > 0 {
					return fmt.Errorf("%d of %d files could not be imported", failed, len(args))
				}
				return nil
			})
		},
	}
}

func newListCmd() *cobra.Command {
	var flags queryFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCLI(cmd, func(app *App) error {
				q, err := flags.query(cmd, app.Config)
				if err != nil {
					return err
				}
				result, err := app.Catalog.List(q)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(result.Items) == 0 {
					fmt.Fprintln(out, "No items.")
					if q.SearchText != "" {
						return printSuggestions(out, app, q.SearchText)
					}
					return nil
				}
				fmt.Fprintln(out, renderItems(result.Items))
				printStats(out, result.Stats)
				return nil
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withCLI(cmd, func(app *App) error {
				item, err := app.Catalog.Get(id)
				if err != nil {
					return err
				}
				printItem(cmd.OutOrStdout(), item)
				return nil
			})
		},
	}
}

func newEditCmd() *cobra.Command {
	var flags itemFlags
	var clearRating bool
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withCLI(cmd, func(app *App) error {
				item, err := app.Catalog.Get(id)
				if err != nil {
					return err
				}

				fields := item.Fields()
				if err := flags.apply(cmd, &fields); err != nil {
					return err
				}
				if clearRating {
					fields.Rating = nil
				}

				updated, err := app.Catalog.Update(id, fields)
				if err != nil {
					return err
				}
				printItem(cmd.OutOrStdout(), updated)
				return nil
			})
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVarP(&flags.title, "title", "t", "", "new title")
	cmd.Flags().BoolVar(&clearRating, "clear-rating", false, "remove the rating")
	cmd.MarkFlagsMutuallyExclusive("rating", "clear-rating")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withCLI(cmd, func(app *App) error {
				if err := app.Catalog.Delete(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted #%d\n", id)
				return nil
			})
		},
	}
}

func newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Mark an item finished, or back to planned if it already is",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withCLI(cmd, func(app *App) error {
				item, err := app.Catalog.ToggleFinished(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "#%d %s: %s\n", item.ID, item.Title, item.Status.Label())
				return nil
			})
		},
	}
}

func newRateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rate ID RATING",
		Short: "Set the rating of an item (0-10, or \"none\")",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var rating *int
			if !strings.EqualFold(args[1], "none") {
				v, err := strconv.Atoi(args[1])
				if err != nil {
					return &models.ValidationError{Field: "rating", Message: "must be a number or \"none\""}
				}
				rating = &v
			}
			return withCLI(cmd, func(app *App) error {
				item, err := app.Catalog.SetRating(id, rating)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "#%d %s: rating %s\n", item.ID, item.Title, orDash(utils.FormatOptionalInt(item.Rating)))
				return nil
			})
		},
	}
}

func newStatsCmd() *cobra.Command {
	var flags queryFlags
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show counts for the matching items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCLI(cmd, func(app *App) error {
				q, err := flags.query(cmd, app.Config)
				if err != nil {
					return err
				}
				result, err := app.Catalog.List(q)
				if err != nil {
					return err
				}
				printStats(cmd.OutOrStdout(), result.Stats)
				return nil
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newExportCmd() *cobra.Command {
	var flags queryFlags
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the matching items to a CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCLI(cmd, func(app *App) error {
				q, err := flags.query(cmd, app.Config)
				if err != nil {
					return err
				}
				result, err := app.Catalog.List(q)
				if err != nil {
					return err
				}
				path, err := app.Exporter.Export(result.Items)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d items to %s\n", len(result.Items), path)
				return nil
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, &models.ValidationError{Field: "id", Message: fmt.Sprintf("%q is not a valid item id", s)}
	}
	return id, nil
}

func renderItems(items []models.MediaItem) string {
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = []string{
			strconv.FormatInt(item.ID, 10),
			item.Title,
			item.Category.String(),
			item.Status.Label(),
			orDash(utils.FormatOptionalInt(item.Rating)),
			utils.FormatOptionalString(item.Notes),
			item.UpdatedAt.Local().Format(utils.ExportTimeLayout),
		}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "CATEGORY", "STATUS", "RATING", "NOTES", "UPDATED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

func printItem(w io.Writer, item *models.MediaItem) {
	fmt.Fprintf(w, "ID:       %d\n", item.ID)
	fmt.Fprintf(w, "Title:    %s\n", item.Title)
	fmt.Fprintf(w, "Category: %s\n", item.Category)
	fmt.Fprintf(w, "Status:   %s\n", item.Status.Label())
	fmt.Fprintf(w, "Rating:   %s\n", orDash(utils.FormatOptionalInt(item.Rating)))
	fmt.Fprintf(w, "Notes:    %s\n", orDash(utils.FormatOptionalString(item.Notes)))
	fmt.Fprintf(w, "Cover:    %s\n", orDash(utils.FormatOptionalString(item.CoverPath)))
	fmt.Fprintf(w, "Created:  %s\n", item.CreatedAt.Local().Format(utils.ExportTimeLayout))
	fmt.Fprintf(w, "Updated:  %s\n", item.UpdatedAt.Local().Format(utils.ExportTimeLayout))
}

func printStats(w io.Writer, s catalog.Stats) {
	fmt.Fprintf(w, "Total: %d | Finished: %d | Unfinished: %d\n", s.Total, s.Finished, s.Unfinished)
	for _, cc := range s.Categories() {
		fmt.Fprintf(w, "  %-6s %d\n", cc.Category, cc.Count)
	}
}

func printSuggestions(w io.Writer, app *App, text string) error {
	suggestions, err := app.Catalog.Suggest(text)
	if err != nil {
		return err
	}
	for _, s := range suggestions {
		fmt.Fprintf(w, "Did you mean %q (#%d)?\n", s.Title, s.ID)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
