package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/philipparndt/flyview/internal/app"
	"github.com/philipparndt/flyview/internal/config"
	"github.com/philipparndt/flyview/pkg/analysis"
	"github.com/philipparndt/flyview/pkg/stl"
	"github.com/philipparndt/flyview/version"
)

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "flyview [model]",
		Short: "Fly-through viewer for 3D models",
		Long: `flyview shows an OBJ, glTF, STL or OpenSCAD model and lets you fly around it
with the keyboard and mouse. Settings are read from a TOML file and
reloaded when it changes.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Model = args[0]
			}
			return app.Run(cmd.Context(), opts, app.NewLogger())
		},
	}

	f := root.Flags()
	f.StringVarP(&opts.ConfigPath, "config", "c", "", "TOML config file")
	f.StringVarP(&opts.Model, "model", "m", "", "model file, overrides the config")
	f.Float32Var(&opts.FieldOfView, "fov", 0, "horizontal field of view in degrees")
	f.StringVar(&opts.LogLevel, "log-level", "", "trace, debug, info, warn or error")
	f.BoolVar(&opts.NoWatch, "no-watch", false, "do not reload changed files")

	root.AddCommand(newVersionCmd(), newConfigCmd(), newInfoCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "flyview", version.GetFullVersion())
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the default configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Default().Encode(cmd.OutOrStdout())
		},
	}
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [file]",
		Short: "Display the size and bounds of an STL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mesh, err := stl.Parse(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "STL File Information")
			fmt.Fprintln(out, "====================")
			if mesh.Name != "" {
				fmt.Fprintf(out, "Name: %s\n", mesh.Name)
			}
			fmt.Fprintf(out, "File: %s\n", args[0])
			fmt.Fprintf(out, "Triangles: %d\n", mesh.TriangleCount())

			b, ok := mesh.Bounds()
			if !ok {
				return nil
			}
			size := b.Size()
			fmt.Fprintln(out, "Bounding Box:")
			fmt.Fprintf(out, "  Min: %v\n", b.Min.Array())
			fmt.Fprintf(out, "  Max: %v\n", b.Max.Array())
			fmt.Fprintf(out, "  Center: %v\n", b.Center().Array())
			fmt.Fprintf(out, "  Size: %.6f x %.6f x %.6f\n", size.At(0), size.At(1), size.At(2))
			fmt.Fprintf(out, "  Diagonal: %.6f\n", b.Diagonal())
			fmt.Fprintf(out, "  Volume: %.6f\n", b.Volume())

			r := analysis.Analyze(mesh)
			fmt.Fprintf(out, "Surface Area: %.6f\n", r.SurfaceArea)
			fmt.Fprintln(out, "Edges:")
			fmt.Fprintf(out, "  Count: %d\n", r.EdgeCount())
			fmt.Fprintf(out, "  Min: %.6f\n", r.MinEdgeLength)
			fmt.Fprintf(out, "  Max: %.6f\n", r.MaxEdgeLength)
			fmt.Fprintf(out, "  Avg: %.6f\n", r.AvgEdgeLength)
			return nil
		},
	}
}

// Execute runs the root command
func Execute() {
	root := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		level, _ := root.Flags().GetString("log-level")
		fmt.Fprintln(os.Stderr, formatError(err, level))
		os.Exit(1)
	}
}

// formatError renders err for the terminal. Stack traces are only shown at
// debug and trace level.
func formatError(err error, level string) string {
	if l, perr := logrus.ParseLevel(level); perr == nil && l >= logrus.DebugLevel {
		return fmt.Sprintf("Error: %+v", err)
	}
	return fmt.Sprintf("Error: %v", err)
}
