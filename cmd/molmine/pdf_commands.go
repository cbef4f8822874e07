package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"molmine/internal/config"
	"molmine/internal/fileutil"
	"molmine/internal/logging"
	"molmine/internal/store"
	"molmine/internal/textutil"
)

func newPdfCommand(ctx *commandContext) *cobra.Command {
	pdfCmd := &cobra.Command{
		Use:   "pdf",
		Short: "Manage stored PDF documents",
	}

	pdfCmd.AddCommand(newPdfAddCommand(ctx))
	pdfCmd.AddCommand(newPdfListCommand(ctx))
	pdfCmd.AddCommand(newPdfShowCommand(ctx))
	pdfCmd.AddCommand(newPdfDeleteCommand(ctx))
	pdfCmd.AddCommand(newPdfExportCommand(ctx))

	return pdfCmd
}

func newPdfAddCommand(ctx *commandContext) *cobra.Command {
	var title string
	var authors string
	var year int
	var journal string
	var volume string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Store a PDF file with its metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve pdf path: %w", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read pdf %s: %w", path, err)
			}

			if strings.TrimSpace(title) == "" {
				base := filepath.Base(path)
				title = strings.TrimSuffix(base, filepath.Ext(base))
			}

			return ctx.withStore(func(st *store.Store) error {
				pdf, err := st.InsertPdf(cmd.Context(), store.NewPdf{
					Title:   textutil.NormalizeTitle(title),
					Authors: textutil.Clean(authors),
					Year:    year,
					Journal: textutil.Clean(journal),
					Volume:  textutil.Clean(volume),
					Data:    data,
				})
				if err != nil {
					return err
				}
				logging.FromContext(cmd.Context()).Info("pdf stored",
					logging.FieldComponent, "cli",
					logging.FieldPdfID, pdf.ID,
					"bytes", len(pdf.Data))
				if jsonOut {
					return writeJSON(cmd, pdfView(pdf))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored PDF %s (%s, %s)\n", pdf.ID, pdf.Title, formatBytes(len(pdf.Data)))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Document title (defaults to the file name)")
	cmd.Flags().StringVar(&authors, "authors", "", "Author list")
	cmd.Flags().IntVar(&year, "year", 0, "Publication year")
	cmd.Flags().StringVar(&journal, "journal", "", "Journal name")
	cmd.Flags().StringVar(&volume, "volume", "", "Journal volume")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the stored record as JSON")
	return cmd
}

func newPdfListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored PDFs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				pdfs, err := st.Pdfs(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOut {
					views := make([]pdfSummary, 0, len(pdfs))
					for _, pdf := range pdfs {
						views = append(views, pdfView(pdf))
					}
					return writeJSON(cmd, views)
				}
				if len(pdfs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No PDFs")
					return nil
				}
				rows := make([][]string, 0, len(pdfs))
				for _, pdf := range pdfs {
					year := ""
					if pdf.Year != 0 {
						year = fmt.Sprintf("%d", pdf.Year)
					}
					rows = append(rows, []string{
						pdf.ID.String(),
						truncate(pdf.Title, 48),
						truncate(pdf.Authors, 32),
						year,
						truncate(pdf.Journal, 24),
						formatBytes(len(pdf.Data)),
					})
				}
				out := renderTable(
					[]string{"ID", "Title", "Authors", "Year", "Journal", "Size"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignRight},
				)
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit PDFs as JSON")
	return cmd
}

func newPdfShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one PDF record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := store.ParsePdfID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				pdf, err := st.GetPdf(cmd.Context(), id)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, pdfView(pdf))
				}
				compounds, err := st.CompoundsByPdf(cmd.Context(), pdf.ID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:        %s\n", pdf.ID)
				fmt.Fprintf(out, "Title:     %s\n", pdf.Title)
				fmt.Fprintf(out, "Authors:   %s\n", pdf.Authors)
				fmt.Fprintf(out, "Year:      %d\n", pdf.Year)
				fmt.Fprintf(out, "Journal:   %s\n", pdf.Journal)
				fmt.Fprintf(out, "Volume:    %s\n", pdf.Volume)
				fmt.Fprintf(out, "Size:      %s\n", formatBytes(len(pdf.Data)))
				fmt.Fprintf(out, "Compounds: %d\n", len(compounds))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the record as JSON")
	return cmd
}

func newPdfDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a PDF record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := store.ParsePdfID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				count, err := st.DeletePdf(cmd.Context(), id)
				if err != nil {
					return err
				}
				if count == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "PDF %s not found\n", id)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted PDF %s\n", id)
				return nil
			})
		},
	}
}

func newPdfExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <id> <destination>",
		Short: "Write a stored PDF back to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := store.ParsePdfID(args[0])
			if err != nil {
				return err
			}
			dest, err := config.ExpandPath(args[1])
			if err != nil {
				return fmt.Errorf("resolve destination: %w", err)
			}
			return ctx.withStore(func(st *store.Store) error {
				pdf, err := st.GetPdf(cmd.Context(), id)
				if err != nil {
					return err
				}
				if info, err := os.Stat(dest); err == nil && info.IsDir() {
					dest = filepath.Join(dest, fmt.Sprintf("pdf-%s.pdf", pdf.ID))
				}
				if err := fileutil.WriteAtomic(dest, pdf.Data); err != nil {
					return fmt.Errorf("export pdf %s: %w", pdf.ID, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported PDF %s to %s\n", pdf.ID, dest)
				return nil
			})
		},
	}
}

// pdfSummary is the JSON view of a Pdf without the binary payload.
type pdfSummary struct {
	ID      store.PdfID `json:"id"`
	Title   string      `json:"title"`
	Authors string      `json:"authors"`
	Year    int         `json:"year"`
	Journal string      `json:"journal"`
	Volume  string      `json:"volume"`
	Size    int         `json:"size_bytes"`
}

func pdfView(pdf *store.Pdf) pdfSummary {
	return pdfSummary{
		ID:      pdf.ID,
		Title:   pdf.Title,
		Authors: pdf.Authors,
		Year:    pdf.Year,
		Journal: pdf.Journal,
		Volume:  pdf.Volume,
		Size:    len(pdf.Data),
	}
}
