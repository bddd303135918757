package camera

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/golang/glog"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"

	"whitted/canvas"
	"whitted/scene"
)

var (
	pixelsRendered = stats.Int64("whitted/pixels_rendered", "Pixels shaded by the render loop", stats.UnitDimensionless)
	chunkLatency   = stats.Float64("whitted/chunk_latency", "Time to render one chunk of rows", stats.UnitMilliseconds)

	pixelsRenderedView = &view.View{
		Name:        "whitted/pixels_rendered",
		Description: "Counter of pixels shaded by the render loop",
		Measure:     pixelsRendered,
		Aggregation: view.Sum(),
	}
	chunkLatencyView = &view.View{
		Name:        "whitted/chunk_latency",
		Description: "Distribution of per-chunk render times",
		Measure:     chunkLatency,
		Aggregation: view.Distribution(1, 5, 10, 50, 100, 500, 1000, 5000),
	}
)

// RegisterMetrics registers the render loop's views with OpenCensus.
func RegisterMetrics() error {
	return view.Register(pixelsRenderedView, chunkLatencyView)
}

// ProgressFunction is called with the number of pixels finished so far and
// the total number of pixels.  Calls are serialized.
type ProgressFunction func(done, total int)

type RenderOptions struct {
	Workers   int
	ChunkRows int
	Progress  ProgressFunction
}

type RenderOpt func(*RenderOptions)

// WithWorkers bounds the number of chunks rendered concurrently.  The
// default is runtime.NumCPU().
func WithWorkers(n int) RenderOpt {
	return func(o *RenderOptions) {
		o.Workers = n
	}
}

// WithChunkRows sets how many image rows each unit of work covers.
func WithChunkRows(n int) RenderOpt {
	return func(o *RenderOptions) {
		o.ChunkRows = n
	}
}

func WithProgress(fn ProgressFunction) RenderOpt {
	return func(o *RenderOptions) {
		o.Progress = fn
	}
}

type chunkWorker struct {
	img              *canvas.Canvas
	progressFunction func(int)

	// These are the dimensions of the overall image, not just the chunk.
	imgCols int

	rowSrc int
	rowLim int

	camera Camera
	scene  *scene.Scene
}

func (w *chunkWorker) render(ctx context.Context) {
	tracer := otel.Tracer("whitted/camera")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "chunkWorker.render")
	defer span.End()
	span.SetAttributes(attribute.Int("rowSrc", w.rowSrc), attribute.Int("rowLim", w.rowLim))

	start := time.Now()
	for cr := w.rowSrc; cr < w.rowLim; cr++ {
		for cc := 0; cc < w.imgCols; cc++ {
			r := w.camera.RayForPixel(cc, cr)
			w.img.WritePixel(cc, cr-w.rowSrc, w.scene.ColorAt(r))
		}
		w.progressFunction(w.imgCols)
	}

	elapsed := time.Since(start)
	stats.Record(ctx,
		pixelsRendered.M(int64((w.rowLim-w.rowSrc)*w.imgCols)),
		chunkLatency.M(float64(elapsed)/float64(time.Millisecond)))
	glog.V(2).Infof("Rendered rows [%d, %d) in %v", w.rowSrc, w.rowLim, elapsed)
}

// RenderScene draws s as seen by cam into a new canvas.
//
// The image is split into bands of rows.  Each band is rendered into a
// private canvas and pasted into the result when done, so workers never
// share pixels.  The output does not depend on the worker count or band
// size.  ctx is used for tracing only; a render always runs to completion.
func RenderScene(ctx context.Context, s *scene.Scene, cam Camera, opts ...RenderOpt) *canvas.Canvas {
	tracer := otel.Tracer("whitted/camera")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "RenderScene")
	defer span.End()

	options := &RenderOptions{
		Workers:   runtime.NumCPU(),
		ChunkRows: 8,
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.Workers < 1 {
		options.Workers = 1
	}
	if options.ChunkRows < 1 {
		options.ChunkRows = 1
	}

	imgCols, imgRows := cam.Size()
	img := canvas.New(imgCols, imgRows)
	span.SetAttributes(attribute.Int("cols", imgCols), attribute.Int("rows", imgRows))

	curProgress := 0
	totalProgress := imgCols * imgRows

	// imgMutex locks both curProgress and img.
	imgMutex := sync.Mutex{}

	// Render can't be cancelled, so neither can acquiring a worker slot.
	acquireCtx := context.WithoutCancel(ctx)
	sem := semaphore.NewWeighted(int64(options.Workers))

	start := time.Now()
	var wg sync.WaitGroup
	for rowSrc := 0; rowSrc < imgRows; rowSrc += options.ChunkRows {
		rowLim := rowSrc + options.ChunkRows
		if rowLim > imgRows {
			rowLim = imgRows
		}

		worker := &chunkWorker{
			progressFunction: func(subProgress int) {
				imgMutex.Lock()
				defer imgMutex.Unlock()
				curProgress += subProgress
				if options.Progress != nil {
					options.Progress(curProgress, totalProgress)
				}
			},
			imgCols: imgCols,
			rowSrc:  rowSrc,
			rowLim:  rowLim,
			camera:  cam,
			scene:   s,
		}
		imgMutex.Lock()
		worker.img = img.Cut(worker.rowSrc, worker.rowLim, 0, imgCols)
		imgMutex.Unlock()

		if err := sem.Acquire(acquireCtx, 1); err != nil {
			// Unreachable with a context that is never done.
			panic(err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			worker.render(ctx)

			imgMutex.Lock()
			defer imgMutex.Unlock()

			img.Paste(worker.img, worker.rowSrc, 0)
		}()
	}

	wg.Wait()

	glog.V(1).Infof("Rendered %dx%d image with %d workers in %v", imgCols, imgRows, options.Workers, time.Since(start))
	return img
}
