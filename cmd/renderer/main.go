// renderer draws a scene file (or the built-in demo room) to a PPM image.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"cloud.google.com/go/profiler"
	"contrib.go.opencensus.io/exporter/stackdriver"
	cloudmetrics "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/metric"
	cloudtrace "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	"github.com/golang/glog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/term"

	"whitted/camera"
	"whitted/output"
	"whitted/ppm"
	"whitted/scene"
	"whitted/scenefile"
)

var (
	sceneFile  = flag.String("scene-file", "", "YAML scene description.  If empty, the built-in demo room is rendered.")
	outputFile = flag.String("output-file", "output.ppm", "Output PPM image.  gs://bucket/object names are written to Cloud Storage.")
	workers    = flag.Int("workers", runtime.NumCPU(), "Number of row bands rendered concurrently")
	chunkRows  = flag.Int("chunk-rows", 8, "Number of image rows in each band of work")

	cpuprofile = flag.String("cpu-profile", "", "write cpu profile to `file`")
	memprofile = flag.String("mem-profile", "", "write memory profile to `file`")

	enableProfiling      = flag.Bool("enable-profiling", false, "Send profiles to Cloud Profiler?")
	enableMetrics        = flag.Bool("enable-metrics", false, "Export render metrics to Cloud Monitoring?")
	monitoring           = flag.Bool("monitoring", false, "Export traces and OpenTelemetry metrics to Google Cloud?")
	monitoringProject    = flag.String("monitoring-project", "", "Override project used for monitoring integration.  If not specified, the project associated with Application Default Credentials is used.")
	monitoringTraceRatio = flag.Float64("monitoring-trace-ratio", 1.0, "What ratio of traces should be exported?")
)

func main() {
	flag.Parse()

	glog.CopyStandardLogTo("INFO")

	glog.Infof("flags:")
	glog.Infof("scene-file: %q", *sceneFile)
	glog.Infof("output-file: %q", *outputFile)
	glog.Infof("workers: %d", *workers)
	glog.Infof("chunk-rows: %d", *chunkRows)

	if err := run(); err != nil {
		glog.Errorf("Error: %v", err)
		glog.Flush()
		os.Exit(1)
	}

	glog.Flush()
}

// run wraps do with the profiling and monitoring setup, so that exporters
// are flushed even when the render fails.
func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("while creating CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("while starting CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	// Cloud Profiler initialization, best done as early as possible.
	if *enableProfiling {
		if err := profiler.Start(profiler.Config{
			Service:        "whitted-renderer",
			ServiceVersion: "0.0.1",
			ProjectID:      *monitoringProject,
		}); err != nil {
			return fmt.Errorf("while initializing profiler: %w", err)
		}
	}

	if *monitoring {
		metricsOpts := []cloudmetrics.Option{}
		traceOpts := []cloudtrace.Option{}
		if *monitoringProject != "" {
			metricsOpts = append(metricsOpts, cloudmetrics.WithProjectID(*monitoringProject))
			traceOpts = append(traceOpts, cloudtrace.WithProjectID(*monitoringProject))
		}

		_, traceShutdown, err := cloudtrace.InstallNewPipeline(traceOpts, sdktrace.WithSampler(sdktrace.TraceIDRatioBased(*monitoringTraceRatio)))
		if err != nil {
			return fmt.Errorf("while installing Cloud Trace OpenTelemetry trace pipeline: %w", err)
		}
		defer traceShutdown()

		pusher, err := cloudmetrics.InstallNewPipeline(metricsOpts)
		if err != nil {
			return fmt.Errorf("while installing Cloud Metrics OpenTelemetry meter pipeline: %w", err)
		}
		defer pusher.Stop(ctx)
	}

	if *enableMetrics {
		if err := camera.RegisterMetrics(); err != nil {
			return fmt.Errorf("while registering render metrics: %w", err)
		}

		exporter, err := stackdriver.NewExporter(stackdriver.Options{
			ProjectID:         *monitoringProject,
			MetricPrefix:      "whitted",
			ReportingInterval: 60 * time.Second,
		})
		if err != nil {
			return fmt.Errorf("while initializing metrics exporter: %w", err)
		}
		if err := exporter.StartMetricsExporter(); err != nil {
			return fmt.Errorf("while starting metrics exporter: %w", err)
		}
		defer exporter.Flush()
		defer exporter.StopMetricsExporter()
	}

	if err := do(ctx); err != nil {
		return err
	}

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			return fmt.Errorf("while creating memory profile: %w", err)
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("while writing memory profile: %w", err)
		}
	}

	return nil
}

var rendersCompleted = metric.Must(global.Meter("whitted/cmd/renderer")).NewInt64Counter(
	"whitted/renders_completed",
	metric.WithDescription("Number of images rendered"),
)

func loadScene(ctx context.Context) (*scene.Scene, *camera.PinholeCamera, error) {
	if *sceneFile == "" {
		glog.Infof("No scene file given, rendering the demo room")
		return scenefile.Parse([]byte(scenefile.DemoYAML))
	}
	return scenefile.Load(ctx, *sceneFile)
}

func do(ctx context.Context) error {
	tracer := otel.Tracer("whitted/cmd/renderer")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "do")
	defer span.End()

	s, cam, err := loadScene(ctx)
	if err != nil {
		return fmt.Errorf("while loading scene: %w", err)
	}

	opts := []camera.RenderOpt{
		camera.WithWorkers(*workers),
		camera.WithChunkRows(*chunkRows),
	}
	interactive := term.IsTerminal(int(os.Stderr.Fd()))
	if interactive {
		opts = append(opts, camera.WithProgress(func(cur, tot int) {
			fmt.Fprintf(os.Stderr, "\r%d/%d %d%%", cur, tot, 100*cur/tot)
		}))
	}

	img := cam.Render(ctx, s, opts...)
	rendersCompleted.Add(ctx, 1, attribute.Bool("demo", *sceneFile == ""))
	if interactive {
		fmt.Fprintf(os.Stderr, "\n")
	}

	out, err := output.Create(ctx, *outputFile)
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

	glog.Infof("Wrote %dx%d image to %s", img.Width, img.Height, *outputFile)
	return nil
}
