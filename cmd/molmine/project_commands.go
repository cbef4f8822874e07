package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"molmine/internal/config"
	"molmine/internal/logging"
	"molmine/internal/store"
)

func newProjectCommand(ctx *commandContext) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage research projects",
	}

	projectCmd.AddCommand(newProjectCreateCommand(ctx))
	projectCmd.AddCommand(newProjectListCommand(ctx))
	projectCmd.AddCommand(newProjectShowCommand(ctx))
	projectCmd.AddCommand(newProjectUseCommand(ctx))
	projectCmd.AddCommand(newProjectUpdateCommand(ctx))
	projectCmd.AddCommand(newProjectDeleteCommand(ctx))

	return projectCmd
}

func newProjectCreateCommand(ctx *commandContext) *cobra.Command {
	var path string
	var fields string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expanded := ""
			if path != "" {
				var err error
				expanded, err = config.ExpandPath(path)
				if err != nil {
					return fmt.Errorf("resolve project path: %w", err)
				}
			}
			return ctx.withStore(func(st *store.Store) error {
				project, err := st.InsertProject(cmd.Context(), store.NewProject{
					Name:   args[0],
					Path:   expanded,
					Fields: fields,
				})
				if err != nil {
					return err
				}
				logging.FromContext(cmd.Context()).Info("project created",
					logging.FieldComponent, "cli",
					logging.FieldProjectID, project.ID)
				if jsonOut {
					return writeJSON(cmd, project)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", project.ID, project.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Filesystem directory for project artifacts")
	cmd.Flags().StringVar(&fields, "fields", "", "Custom field schema as a JSON document")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the created project as JSON")
	return cmd
}

func newProjectListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				projects, err := st.Projects(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, projects)
				}
				if len(projects) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No projects")
					return nil
				}

				active, err := st.ActiveProject(cmd.Context())
				if err != nil && !errors.Is(err, store.ErrNotFound) {
					return err
				}

				rows := make([][]string, 0, len(projects))
				for _, project := range projects {
					marker := ""
					if active != nil && active.ID == project.ID {
						marker = "*"
					}
					rows = append(rows, []string{
						project.ID.String(),
						marker,
						project.Name,
						project.Path,
						project.CreatedAt.Format(time.DateOnly),
					})
				}
				out := renderTable(
					[]string{"ID", "Active", "Name", "Path", "Created"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit projects as JSON")
	return cmd
}

func newProjectShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := store.ParseProjectID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				project, err := st.GetProject(cmd.Context(), id)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, project)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:      %s\n", project.ID)
				fmt.Fprintf(out, "Name:    %s\n", project.Name)
				fmt.Fprintf(out, "Path:    %s\n", project.Path)
				fmt.Fprintf(out, "Created: %s\n", project.CreatedAt.Format(time.RFC3339))
				fmt.Fprintf(out, "Fields:  %s\n", project.Fields)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the project as JSON")
	return cmd
}

func newProjectUseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Set the active project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := store.ParseProjectID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				if err := st.SetActiveProject(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Active project set to %s\n", id)
				return nil
			})
		},
	}
}

func newProjectUpdateCommand(ctx *commandContext) *cobra.Command {
	var name string
	var path string
	var fields string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update project fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := store.ParseProjectID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				project, err := st.GetProject(cmd.Context(), id)
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("name") {
					project.Name = name
				}
				if cmd.Flags().Changed("path") {
					expanded, err := config.ExpandPath(path)
					if err != nil {
						return fmt.Errorf("resolve project path: %w", err)
					}
					project.Path = expanded
				}
				if cmd.Flags().Changed("fields") {
					project.Fields = fields
				}
				updated, err := st.UpdateProject(cmd.Context(), project)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, updated)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", updated.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New project name")
	cmd.Flags().StringVar(&path, "path", "", "New project directory")
	cmd.Flags().StringVar(&fields, "fields", "", "New custom field schema as a JSON document")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the updated project as JSON")
	return cmd
}

func newProjectDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := store.ParseProjectID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				count, err := st.DeleteProject(cmd.Context(), id)
				if err != nil {
					return err
				}
				if count == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Project %s not found\n", id)
					return nil
				}
				// Drop a stale active-project marker.
				if value, err := st.GetValue(cmd.Context(), store.ActiveProjectKey); err == nil && value == id.String() {
					if _, err := st.DeleteValue(cmd.Context(), store.ActiveProjectKey); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", id)
				return nil
			})
		},
	}
}
