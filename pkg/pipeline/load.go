package pipeline

import (
	"context"
	"io"
	"time"

	pkgio "github.com/matzehuels/chordwheel/pkg/io"
	"github.com/matzehuels/chordwheel/pkg/graph"
	"github.com/matzehuels/chordwheel/pkg/observability"
)

// sourceRequest labels datasets that arrive in a request body.
const sourceRequest = "request"

// Load reads a dataset file and enforces the dataset limits.
func Load(ctx context.Context, path string) (graph.Dataset, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	ds, err := pkgio.ImportWords(path)
	if err == nil {
		err = ValidateDataset(ds)
	}
	hooks.OnLoadComplete(ctx, path, len(ds.Words), time.Since(start), err)
	if err != nil {
		return graph.Dataset{}, err
	}
	return ds, nil
}

// LoadReader decodes a dataset in the given format and enforces the
// dataset limits.
func LoadReader(ctx context.Context, r io.Reader, format pkgio.Format) (graph.Dataset, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, sourceRequest)
	start := time.Now()

	ds, err := pkgio.ReadWords(r, format)
	if err == nil {
		err = ValidateDataset(ds)
	}
	hooks.OnLoadComplete(ctx, sourceRequest, len(ds.Words), time.Since(start), err)
	if err != nil {
		return graph.Dataset{}, err
	}
	return ds, nil
}
