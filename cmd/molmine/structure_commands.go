package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"molmine/internal/chemistry"
)

func newStructureCommand(ctx *commandContext) *cobra.Command {
	structureCmd := &cobra.Command{
		Use:   "structure",
		Short: "Call the recognition service directly",
	}

	structureCmd.AddCommand(newStructureValidateCommand(ctx))
	structureCmd.AddCommand(newStructureRecognizeCommand(ctx))
	structureCmd.AddCommand(newStructureConvertCommand(ctx))

	return structureCmd
}

func newStructureValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <smiles>",
		Short: "Validate a SMILES string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.chemistryClient()
			if err != nil {
				return err
			}
			structure, err := client.ValidateSMILES(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printStructure(cmd, structure)
		},
	}
}

func newStructureRecognizeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "recognize <image-file>",
		Short: "Recognize a structure from an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			encoded, err := encodeImageFile(args[0])
			if err != nil {
				return err
			}
			client, err := ctx.chemistryClient()
			if err != nil {
				return err
			}
			structure, err := client.RecognizeStructure(cmd.Context(), encoded)
			if err != nil {
				return err
			}
			return printStructure(cmd, structure)
		},
	}
}

func newStructureConvertCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <molfile>",
		Short: "Convert a molfile into structure data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			molfile, err := readTextFile(args[0])
			if err != nil {
				return err
			}
			client, err := ctx.chemistryClient()
			if err != nil {
				return err
			}
			structure, err := client.MolfileToStructure(cmd.Context(), molfile)
			if err != nil {
				return err
			}
			return printStructure(cmd, structure)
		},
	}
}

// printStructure emits the service response verbatim so callers can pipe it.
func printStructure(cmd *cobra.Command, structure chemistry.Structure) error {
	if len(structure.Raw) == 0 {
		return writeJSON(cmd, structure)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), string(structure.Raw))
	return err
}
