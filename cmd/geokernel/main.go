// Command geokernel is a thin demonstration CLI that exercises the
// geometry kernel end to end: load a building spec, drive the pipeline
// orchestrator against the reference floorplan packer, and write a
// manifest. The production CLI surface (batch mode, progress reporting,
// boot animation, asset registry) is explicitly out of scope per
// spec.md §1 — this exists only to give the ambient stack a concrete
// home and a way to smoke-test the kernel by hand.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/buildkernel/geokernel/core/kernelconfig"
	"github.com/buildkernel/geokernel/core/pipeline"
	"github.com/buildkernel/geokernel/internal/floorplan"
	"github.com/buildkernel/geokernel/internal/specfile"
	"github.com/buildkernel/geokernel/internal/watch"
)

var (
	ok   = color.New(color.FgGreen).SprintFunc()
	warn = color.New(color.FgYellow).SprintFunc()
	bad  = color.New(color.FgRed).SprintFunc()
	info = color.New(color.FgCyan).SprintFunc()
)

func main() {
	root := &cobra.Command{
		Use:   "geokernel",
		Short: "Deterministic procedural building geometry kernel",
	}
	root.AddCommand(newGenerateCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, bad(err.Error()))
		os.Exit(1)
	}
}

func newGenerateCmd() *cobra.Command {
	var (
		specPath     string
		configPath   string
		manifestPath string
		formatFlag   string
		watchFlag    bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a building's wall geometry and export manifest from a spec file",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := kernelconfig.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			run := func() error {
				return runGeneration(specPath, manifestPath, formatFlag, cfg, logger)
			}
			if err := run(); err != nil {
				fmt.Fprintln(os.Stderr, bad(err.Error()))
				if !watchFlag {
					return err
				}
			}

			if !watchFlag {
				return nil
			}

			fmt.Println(info(fmt.Sprintf("watching %s for changes (ctrl-c to stop)", specPath)))
			w, err := watch.New(specPath, func() {
				fmt.Println(info("spec file changed, regenerating..."))
				if err := run(); err != nil {
					fmt.Fprintln(os.Stderr, bad(err.Error()))
				}
			}, logger)
			if err != nil {
				return fmt.Errorf("starting watcher: %w", err)
			}
			defer w.Close()
			w.Start()
			return nil
		},
	}

	cmd.Flags().StringVar(&specPath, "spec", "", "path to a building spec YAML file (required)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a kernel config file (optional; env GEOKERNEL_* always applies)")
	cmd.Flags().StringVar(&manifestPath, "out", "manifest.json", "path to write the export manifest")
	cmd.Flags().StringVar(&formatFlag, "format", "glb", "exporter format stamped into the manifest (glb, blend)")
	cmd.Flags().BoolVar(&watchFlag, "watch", false, "re-generate whenever the spec file changes")
	cmd.MarkFlagRequired("spec")

	return cmd
}

func runGeneration(specPath, manifestPath, formatFlag string, cfg kernelconfig.Config, logger *zap.Logger) error {
	spec, err := specfile.Load(specPath)
	if err != nil {
		return err
	}

	orch := pipeline.New(floorplan.NewGenerator(), cfg, logger)
	format := pipeline.FormatGLB
	if formatFlag == string(pipeline.FormatBlend) {
		format = pipeline.FormatBlend
	}

	out, err := orch.Generate(spec, manifestPath, format)
	if err != nil {
		return err
	}

	fmt.Println(ok(fmt.Sprintf("generated %d floor(s), roof=%s", len(out.Floors), out.RoofType)))
	for _, f := range out.Floors {
		fmt.Printf("  floor %d: %d rooms, %d wall segments\n", f.Index, f.RoomCount, f.WallSegmentCount)
	}
	for _, w := range out.Warnings {
		fmt.Println(warn("  " + w))
	}
	fmt.Println(info(fmt.Sprintf("manifest written to %s", out.ManifestPath)))
	return nil
}

func newLogger() (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.DisableStacktrace = true
	return zcfg.Build()
}
