package trace

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
)

// CSRepository persists trace data as JSON objects in a Google Cloud Storage bucket.
type CSRepository struct {
	bucket string
	prefix string
	client *storage.Client
}

// NewCSRepository creates a CSRepository using application default credentials.
// Objects are written to gs://{bucket}/{prefix}{trace_id}.json.
func NewCSRepository(ctx context.Context, bucket, prefix string) (*CSRepository, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Cloud Storage client")
	}
	return &CSRepository{
		bucket: bucket,
		prefix: prefix,
		client: client,
	}, nil
}

// Save uploads the trace as JSON.
func (r *CSRepository) Save(ctx context.Context, trace *Trace) error {
	objectName := r.prefix + trace.TraceID + ".json"

	w := r.client.Bucket(r.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = "application/json"

	if err := json.NewEncoder(w).Encode(trace); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write trace object",
			goerr.V("bucket", r.bucket),
			goerr.V("object", objectName),
		)
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to close trace object",
			goerr.V("bucket", r.bucket),
			goerr.V("object", objectName),
		)
	}

	return nil
}

// List returns one page of trace summaries under the prefix.
func (r *CSRepository) List(ctx context.Context, req ListRequest) (*ListResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	it := r.client.Bucket(r.bucket).Objects(ctx, &storage.Query{Prefix: r.prefix})

	pager := iterator.NewPager(it, pageSize, req.PageToken)
	var attrs []*storage.ObjectAttrs
	nextToken, err := pager.NextPage(&attrs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list objects",
			goerr.V("bucket", r.bucket),
			goerr.V("prefix", r.prefix),
		)
	}

	resp := &ListResponse{NextPageToken: nextToken}
	for _, attr := range attrs {
		if !strings.HasSuffix(attr.Name, ".json") {
			continue
		}
		traceID := strings.TrimSuffix(strings.TrimPrefix(attr.Name, r.prefix), ".json")
		if traceID == "" || strings.Contains(traceID, "/") {
			continue
		}

		resp.Traces = append(resp.Traces, Summary{
			TraceID:   traceID,
			Size:      attr.Size,
			UpdatedAt: attr.Updated,
		})
	}

	return resp, nil
}

// Get downloads one trace by ID.
func (r *CSRepository) Get(ctx context.Context, traceID string) (*Trace, error) {
	objectName := r.prefix + traceID + ".json"
	reader, err := r.client.Bucket(r.bucket).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read trace object",
			goerr.V("bucket", r.bucket),
			goerr.V("object", objectName),
		)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read trace data",
			goerr.V("bucket", r.bucket),
			goerr.V("object", objectName),
		)
	}

	var t Trace
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, goerr.Wrap(err, "failed to parse trace data",
			goerr.V("bucket", r.bucket),
			goerr.V("object", objectName),
		)
	}

	return &t, nil
}

// Close releases the underlying client.
func (r *CSRepository) Close() error {
	return r.client.Close()
}
