// whitted-tool draws the warm-up demo pictures and inspects scene files.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"whitted/canvas"
	"whitted/demo"
	"whitted/geometry"
	"whitted/output"
	"whitted/ppm"
	"whitted/scenefile"
)

var cmdRoot = &cobra.Command{
	Use:          "whitted-tool",
	SilenceUsage: true,
}

var outputFile string

func init() {
	// Expose glog's flags (-v, --logtostderr, ...) on every command.
	cmdRoot.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	cmdRoot.PersistentFlags().StringVar(&outputFile, "output-file", "output.ppm", "Output PPM image.  gs://bucket/object names are written to Cloud Storage.")
}

func writeImage(ctx context.Context, img *canvas.Canvas) error {
	out, err := output.Create(ctx, outputFile)
	if err != nil {
		return fmt.Errorf("while opening output file: %w", err)
	}

	if err := ppm.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("while writing image: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("while closing output file: %w", err)
	}

	glog.Infof("Wrote %dx%d image to %s", img.Width, img.Height, outputFile)
	return nil
}

var cmdProjectile = &cobra.Command{
	Use:   "projectile",
	Short: "Plot the arc of a projectile under gravity and wind",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		return writeImage(ctx, demo.Projectile(projectileWidth, projectileHeight))
	},
}

var (
	projectileWidth  int
	projectileHeight int
)

func init() {
	cmdProjectile.Flags().IntVar(&projectileWidth, "width", 900, "Canvas width in pixels")
	cmdProjectile.Flags().IntVar(&projectileHeight, "height", 500, "Canvas height in pixels")
}

var cmdClock = &cobra.Command{
	Use:   "clock",
	Short: "Mark the twelve hours of a clock face",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		return writeImage(ctx, demo.Clock(clockSize))
	},
}

var clockSize int

func init() {
	cmdClock.Flags().IntVar(&clockSize, "size", 200, "Canvas width and height in pixels")
}

var cmdSilhouette = &cobra.Command{
	Use:   "silhouette",
	Short: "Cast rays at a unit sphere and paint its silhouette",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		return writeImage(ctx, demo.Silhouette(silhouetteSize, geometry.NewSphere()))
	},
}

var silhouetteSize int

func init() {
	cmdSilhouette.Flags().IntVar(&silhouetteSize, "size", 512, "Canvas width and height in pixels")
}

var cmdScene = &cobra.Command{
	Use:   "scene [command]",
	Short: "Work with YAML scene files",
}

var cmdSceneCheck = &cobra.Command{
	Use:   "check <file>",
	Short: "Load a scene file and print a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		s, cam, err := scenefile.Load(ctx, args[0])
		if err != nil {
			return fmt.Errorf("while loading scene: %w", err)
		}

		fmt.Printf("camera: %dx%d, field of view %.4f rad\n", cam.HSize, cam.VSize, cam.FieldOfView)
		if s.Light != nil {
			fmt.Printf("light: %v intensity %v\n", s.Light.Position, s.Light.Intensity)
		} else {
			fmt.Printf("light: none\n")
		}
		fmt.Printf("objects: %d\n", len(s.Objects))
		for i, o := range s.Objects {
			fmt.Printf("  %d: color %v\n", i, o.Material().Color)
		}
		return nil
	},
}

var cmdSceneDemo = &cobra.Command{
	Use:   "demo",
	Short: "Print the built-in demo scene, as a starting point for new scenes",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Print(scenefile.DemoYAML)
		return err
	},
}

func main() {
	// glog warns on every line until flag.Parse has been called.
	flag.CommandLine.Parse([]string{})
	glog.CopyStandardLogTo("INFO")
	defer glog.Flush()

	cmdRoot.AddCommand(cmdProjectile, cmdClock, cmdSilhouette, cmdScene)
	cmdScene.AddCommand(cmdSceneCheck, cmdSceneDemo)

	if err := cmdRoot.Execute(); err != nil {
		glog.Flush()
		os.Exit(1)
	}
}
