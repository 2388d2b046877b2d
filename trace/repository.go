package trace

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Repository is the interface for persisting trace data.
type Repository interface {
	Save(ctx context.Context, trace *Trace) error
}

// Source provides read access to persisted traces.
type Source interface {
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	Get(ctx context.Context, traceID string) (*Trace, error)
}

// Summary is a lightweight representation of a persisted trace, derived from file or object
// metadata without reading the contents.
type Summary struct {
	TraceID   string    `json:"trace_id"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListRequest selects one page of summaries.
type ListRequest struct {
	PageSize  int
	PageToken string
}

// ListResponse is one page of summaries.
type ListResponse struct {
	Traces        []Summary
	NextPageToken string
}

const defaultPageSize = 20

// FileRepository persists trace data as JSON files.
type FileRepository struct {
	dir string
}

// NewFileRepository creates a new FileRepository that writes to the given directory.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// Save writes the trace as JSON to {dir}/{trace_id}.json.
func (r *FileRepository) Save(_ context.Context, trace *Trace) error {
	if err := os.MkdirAll(r.dir, 0750); err != nil {
		return goerr.Wrap(err, "failed to create trace directory", goerr.V("dir", r.dir))
	}

	data, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal trace")
	}

	filePath := filepath.Join(r.dir, trace.TraceID+".json")
	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return goerr.Wrap(err, "failed to write trace file", goerr.V("path", filePath))
	}

	return nil
}

// List returns trace summaries ordered by file name. Trace IDs are UUID v7, so the order is
// also chronological.
func (r *FileRepository) List(_ context.Context, req ListRequest) (*ListResponse, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read directory", goerr.V("dir", r.dir))
	}

	type fileEntry struct {
		name string
		info os.FileInfo
	}
	var files []fileEntry
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, fileEntry{name: e.Name(), info: info})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].name < files[j].name
	})

	startIdx := 0
	if req.PageToken != "" {
		lastFile, err := decodePageToken(req.PageToken)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid page token")
		}
		startIdx = sort.Search(len(files), func(i int) bool {
			return files[i].name > lastFile
		})
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	endIdx := min(startIdx+pageSize, len(files))

	resp := &ListResponse{}
	for _, f := range files[startIdx:endIdx] {
		resp.Traces = append(resp.Traces, Summary{
			TraceID:   strings.TrimSuffix(f.name, ".json"),
			Size:      f.info.Size(),
			UpdatedAt: f.info.ModTime(),
		})
	}

	if endIdx < len(files) {
		resp.NextPageToken = encodePageToken(files[endIdx-1].name)
	}

	return resp, nil
}

// Get reads one trace by ID.
func (r *FileRepository) Get(_ context.Context, traceID string) (*Trace, error) {
	if traceID == "" || strings.ContainsAny(traceID, `/\`) {
		return nil, goerr.New("invalid trace ID", goerr.V("traceID", traceID))
	}
	filePath := filepath.Join(r.dir, traceID+".json")

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "trace not found", goerr.V("traceID", traceID))
		}
		return nil, goerr.Wrap(err, "failed to read trace file", goerr.V("traceID", traceID))
	}

	var t Trace
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, goerr.Wrap(err, "failed to parse trace file", goerr.V("traceID", traceID))
	}

	return &t, nil
}

func encodePageToken(fileName string) string {
	return base64.URLEncoding.EncodeToString([]byte(fileName))
}

func decodePageToken(token string) (string, error) {
	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", goerr.Wrap(err, "failed to decode page token")
	}
	return string(b), nil
}
