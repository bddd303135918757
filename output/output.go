// Package output opens destinations for rendered images, either local files
// or Google Cloud Storage objects.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/golang/glog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	googleopt "google.golang.org/api/option"
)

const gcsScheme = "gs://"

// splitGCSName splits "gs://bucket/path/to/object" into its bucket and
// object.  ok is false if name is not a GCS name.
func splitGCSName(name string) (bucket, object string, ok bool, err error) {
	if !strings.HasPrefix(name, gcsScheme) {
		return "", "", false, nil
	}

	rest := strings.TrimPrefix(name, gcsScheme)
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", true, fmt.Errorf("malformed GCS name %q, want gs://bucket/object", name)
	}
	return parts[0], parts[1], true, nil
}

// gcsWriter closes the client that owns the object writer once the object
// is finalized.
type gcsWriter struct {
	*storage.Writer
	gcs *storage.Client
}

func (w *gcsWriter) Close() error {
	defer w.gcs.Close()
	if err := w.Writer.Close(); err != nil {
		return fmt.Errorf("while closing object writer: %w", err)
	}
	return nil
}

// Create opens name for writing.  Names of the form gs://bucket/object are
// written to Google Cloud Storage using application default credentials,
// and only become visible once the returned writer is closed.  Any other
// name is a local file, created or truncated.
func Create(ctx context.Context, name string) (io.WriteCloser, error) {
	tracer := otel.Tracer("whitted/output")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Create")
	defer span.End()
	span.SetAttributes(attribute.String("name", name))

	bucket, object, isGCS, err := splitGCSName(name)
	if err != nil {
		return nil, err
	}

	if !isGCS {
		f, err := os.Create(name)
		if err != nil {
			return nil, fmt.Errorf("while creating output file: %w", err)
		}
		return f, nil
	}

	gcs, err := storage.NewClient(ctx, googleopt.WithGRPCConnectionPool(1))
	if err != nil {
		return nil, fmt.Errorf("while creating GCS client: %w", err)
	}

	glog.V(1).Infof("Writing to bucket %q, object %q", bucket, object)

	w := gcs.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = "image/x-portable-pixmap"
	return &gcsWriter{Writer: w, gcs: gcs}, nil
}
