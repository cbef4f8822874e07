package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"molmine/internal/chemistry"
	"molmine/internal/config"
	"molmine/internal/fileutil"
	"molmine/internal/logging"
	"molmine/internal/store"
)

func newCompoundCommand(ctx *commandContext) *cobra.Command {
	compoundCmd := &cobra.Command{
		Use:   "compound",
		Short: "Manage extracted chemical compounds",
	}

	compoundCmd.AddCommand(newCompoundAddCommand(ctx))
	compoundCmd.AddCommand(newCompoundListCommand(ctx))
	compoundCmd.AddCommand(newCompoundShowCommand(ctx))
	compoundCmd.AddCommand(newCompoundDeleteCommand(ctx))

	return compoundCmd
}

func newCompoundAddCommand(ctx *commandContext) *cobra.Command {
	var pdfFlag string
	var smiles string
	var imagePath string
	var molfilePath string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Resolve a structure and attach it to a PDF",
		Long: `Resolve a chemical structure through the recognition service and store the
result as a compound linked to a stored PDF. Exactly one structure source must
be given: a SMILES string, a structure image file, or a molfile.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pdfID, err := store.ParsePdfID(pdfFlag)
			if err != nil {
				return fmt.Errorf("parse --pdf: %w", err)
			}

			sources := 0
			for _, value := range []string{smiles, imagePath, molfilePath} {
				if strings.TrimSpace(value) != "" {
					sources++
				}
			}
			if sources != 1 {
				return errors.New("exactly one of --smiles, --image, or --molfile is required")
			}

			client, err := ctx.chemistryClient()
			if err != nil {
				return err
			}

			var structure chemistry.Structure
			switch {
			case smiles != "":
				structure, err = client.ValidateSMILES(cmd.Context(), smiles)
			case imagePath != "":
				encoded, encErr := encodeImageFile(imagePath)
				if encErr != nil {
					return encErr
				}
				structure, err = client.RecognizeStructure(cmd.Context(), encoded)
			default:
				molfile, readErr := readTextFile(molfilePath)
				if readErr != nil {
					return readErr
				}
				structure, err = client.MolfileToStructure(cmd.Context(), molfile)
			}
			if err != nil {
				return err
			}
			structure, err = structure.Resolve()
			if err != nil {
				return err
			}

			return ctx.withStore(func(st *store.Store) error {
				imageRef, err := saveStructureImage(ctx, cmd, st, structure.StructureImage)
				if err != nil {
					return err
				}
				compound, err := st.InsertCompound(cmd.Context(), store.NewCompound{
					PdfID:        pdfID,
					SMILES:       structure.SMILES,
					InChI:        structure.InChI,
					Image:        imageRef,
					ChemicalData: string(structure.Raw),
				})
				if err != nil {
					return err
				}
				logging.FromContext(cmd.Context()).Info("compound stored",
					logging.FieldComponent, "cli",
					logging.FieldCompoundID, compound.ID,
					logging.FieldPdfID, compound.PdfID)
				if jsonOut {
					return writeJSON(cmd, compound)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored compound %s (%s)\n", compound.ID, compound.SMILES)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&pdfFlag, "pdf", "", "Identifier of the PDF this compound belongs to (required)")
	cmd.Flags().StringVar(&smiles, "smiles", "", "SMILES string to validate")
	cmd.Flags().StringVar(&imagePath, "image", "", "Structure image file to recognize")
	cmd.Flags().StringVar(&molfilePath, "molfile", "", "Molfile to convert")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the stored compound as JSON")
	_ = cmd.MarkFlagRequired("pdf")
	return cmd
}

// saveStructureImage decodes the service-rendered structure image and writes
// it under the active project directory (or the data directory when no project
// is active) with a generated filename. Returns the stored path, or "" when
// the service returned no image.
func saveStructureImage(ctx *commandContext, cmd *cobra.Command, st *store.Store, encoded string) (string, error) {
	if strings.TrimSpace(encoded) == "" {
		return "", nil
	}
	decoded, err := base64.StdEncoding.DecodeString(stripDataURI(encoded))
	if err != nil {
		return "", fmt.Errorf("decode structure image: %w", err)
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(cfg.Paths.DataDir, "structures")
	if active, err := st.ActiveProject(cmd.Context()); err == nil && active.Path != "" {
		dir = filepath.Join(active.Path, "structures")
	} else if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create structures directory: %w", err)
	}

	target := filepath.Join(dir, uuid.NewString()+".png")
	if err := fileutil.WriteAtomic(target, decoded); err != nil {
		return "", fmt.Errorf("write structure image: %w", err)
	}
	return target, nil
}

func stripDataURI(value string) string {
	if idx := strings.Index(value, ";base64,"); idx >= 0 {
		return value[idx+len(";base64,"):]
	}
	return value
}

func encodeImageFile(path string) (string, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve image path: %w", err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return "", fmt.Errorf("read image %s: %w", expanded, err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

func readTextFile(path string) (string, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve molfile path: %w", err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return "", fmt.Errorf("read molfile %s: %w", expanded, err)
	}
	return string(data), nil
}

func newCompoundListCommand(ctx *commandContext) *cobra.Command {
	var pdfFlag string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List compounds",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				var compounds []*store.Compound
				var err error
				if strings.TrimSpace(pdfFlag) != "" {
					pdfID, parseErr := store.ParsePdfID(pdfFlag)
					if parseErr != nil {
						return fmt.Errorf("parse --pdf: %w", parseErr)
					}
					compounds, err = st.CompoundsByPdf(cmd.Context(), pdfID)
				} else {
					compounds, err = st.Compounds(cmd.Context())
				}
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, compounds)
				}
				if len(compounds) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No compounds")
					return nil
				}
				rows := make([][]string, 0, len(compounds))
				for _, compound := range compounds {
					rows = append(rows, []string{
						compound.ID.String(),
						compound.PdfID.String(),
						truncate(compound.SMILES, 40),
						truncate(compound.InChI, 40),
						yesNo(compound.Image != ""),
					})
				}
				out := renderTable(
					[]string{"ID", "PDF", "SMILES", "InChI", "Image"},
					rows,
					[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&pdfFlag, "pdf", "", "Restrict to compounds of one PDF")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit compounds as JSON")
	return cmd
}

func newCompoundShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one compound",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := store.ParseCompoundID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				compound, err := st.GetCompound(cmd.Context(), id)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, compound)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:            %s\n", compound.ID)
				fmt.Fprintf(out, "PDF:           %s\n", compound.PdfID)
				fmt.Fprintf(out, "SMILES:        %s\n", compound.SMILES)
				fmt.Fprintf(out, "InChI:         %s\n", compound.InChI)
				fmt.Fprintf(out, "Image:         %s\n", compound.Image)
				fmt.Fprintf(out, "Chemical data: %s\n", compound.ChemicalData)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the compound as JSON")
	return cmd
}

func newCompoundDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a compound",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := store.ParseCompoundID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				count, err := st.DeleteCompound(cmd.Context(), id)
				if err != nil {
					return err
				}
				if count == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Compound %s not found\n", id)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted compound %s\n", id)
				return nil
			})
		},
	}
}
