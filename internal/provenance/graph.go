// Package provenance loads the append-only lineage log and answers
// queries over it: which artifact came from which source, through which
// intermediate steps. The log is written elsewhere; this package is
// strictly the read side.
package provenance

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TranscriptSource marks an original, non-derived input. Records with
// this source type are the roots of any lineage chain.
const TranscriptSource = "transcript"

// Record is a single lineage fact: one artifact produced from one source.
type Record struct {
	// ID uniquely identifies the record. Uniqueness is a producer
	// contract, not enforced here.
	ID string `json:"id"`

	// ArtifactPath is the file that was produced.
	ArtifactPath string `json:"artifact_path"`

	// ArtifactType classifies the output (session, index, learning).
	ArtifactType string `json:"artifact_type"`

	// SourcePath is the input the artifact was derived from.
	SourcePath string `json:"source_path"`

	// SourceType classifies the input. "transcript" means original input.
	SourceType string `json:"source_type"`

	// SessionID correlates records belonging to one working session.
	SessionID string `json:"session_id,omitempty"`

	// CreatedAt is when the record was appended.
	CreatedAt time.Time `json:"created_at"`

	// Metadata carries producer-specific extras.
	Metadata Meta `json:"metadata,omitempty"`
}

// Graph is an in-memory snapshot of the provenance log. It is loaded
// once per invocation and never written back; queries are pure scans
// over Records in file order.
type Graph struct {
	// Path is the JSONL log file the records came from.
	Path string

	// Records holds the loaded records in on-disk order.
	Records []Record

	strict bool
}

// Option configures graph loading.
type Option func(*Graph)

// WithStrict makes Load fail on the first malformed line instead of
// skipping it. Default is lenient: the log is externally appended over
// a long period and partial corruption must not discard valid records.
func WithStrict() Option {
	return func(g *Graph) {
		g.strict = true
	}
}

// NewGraph loads the provenance log at path. A missing file yields an
// empty graph and no error; an unreadable file is a hard failure.
func NewGraph(path string, opts ...Option) (*Graph, error) {
	g := &Graph{Path: path}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.load(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Graph) load() error {
	f, err := os.Open(g.Path)
	if os.IsNotExist(err) {
		// No provenance yet. Normal state, not a failure.
		g.Records = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("open provenance log: %w", err)
	}
	defer f.Close()

	g.Records = nil
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var record Record
		if err := json.Unmarshal(raw, &record); err != nil {
			if g.strict {
				return fmt.Errorf("parse provenance log line %d: %w", line, err)
			}
			continue // skip malformed lines
		}
		g.Records = append(g.Records, record)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read provenance log: %w", err)
	}
	return nil
}

// TraceResult is the lineage answer for one artifact.
type TraceResult struct {
	// Artifact is the path that was traced.
	Artifact string `json:"artifact"`

	// Chain holds every record referencing the artifact, in log order.
	Chain []Record `json:"chain"`

	// Sources lists the source paths of transcript-typed records in the
	// chain. Duplicates are kept: two records sharing one transcript
	// yield it twice.
	Sources []string `json:"sources"`
}

// Trace finds every record whose artifact matches artifactPath. Matching
// is two-pass: exact (absolute-resolved or literal) first, then by base
// filename only if the first pass found nothing. An empty chain is a
// valid answer, not an error.
func (g *Graph) Trace(artifactPath string) *TraceResult {
	result := &TraceResult{
		Artifact: artifactPath,
		Chain:    make([]Record, 0),
		Sources:  make([]string, 0),
	}

	absPath, err := filepath.Abs(artifactPath)
	if err != nil {
		absPath = artifactPath
	}

	for _, record := range g.Records {
		recordAbs, _ := filepath.Abs(record.ArtifactPath)
		if recordAbs == absPath || record.ArtifactPath == artifactPath {
			result.addMatch(record)
		}
	}

	if len(result.Chain) == 0 {
		// Fall back to filename matching. Covers queries like
		// "session-a.md" against a log of full paths.
		baseName := filepath.Base(artifactPath)
		for _, record := range g.Records {
			if filepath.Base(record.ArtifactPath) == baseName {
				result.addMatch(record)
			}
		}
	}

	return result
}

func (r *TraceResult) addMatch(record Record) {
	r.Chain = append(r.Chain, record)
	if record.SourceType == TranscriptSource {
		r.Sources = append(r.Sources, record.SourcePath)
	}
}

// FindBySession returns every record carrying the exact session ID, in
// log order. Unknown or empty IDs return nil.
func (g *Graph) FindBySession(sessionID string) []Record {
	var results []Record
	for _, record := range g.Records {
		if record.SessionID == sessionID {
			results = append(results, record)
		}
	}
	return results
}

// FindBySource returns every record derived from sourcePath, matched as
// absolute-resolved paths or literal strings. No filename fallback here;
// sources are expected to be referenced by real path.
func (g *Graph) FindBySource(sourcePath string) []Record {
	var results []Record
	absSource, err := filepath.Abs(sourcePath)
	if err != nil {
		absSource = sourcePath
	}

	for _, record := range g.Records {
		recordSource, _ := filepath.Abs(record.SourcePath)
		if recordSource == absSource || record.SourcePath == sourcePath {
			results = append(results, record)
		}
	}
	return results
}

// Stats aggregates the loaded log.
type Stats struct {
	TotalRecords   int            `json:"total_records"`
	ArtifactTypes  map[string]int `json:"artifact_types"`
	SourceTypes    map[string]int `json:"source_types"`
	UniqueSessions int            `json:"unique_sessions"`
}

// GetStats computes aggregates in a single pass. Nothing is cached; the
// graph is cheap to scan at the scale the log grows to.
func (g *Graph) GetStats() *Stats {
	stats := &Stats{
		TotalRecords:  len(g.Records),
		ArtifactTypes: make(map[string]int),
		SourceTypes:   make(map[string]int),
	}

	sessions := make(map[string]struct{})
	for _, record := range g.Records {
		stats.ArtifactTypes[record.ArtifactType]++
		stats.SourceTypes[record.SourceType]++
		if record.SessionID != "" {
			sessions[record.SessionID] = struct{}{}
		}
	}

	stats.UniqueSessions = len(sessions)
	return stats
}
