// Package filter evaluates user-supplied CEL expressions against
// provenance records, powering `lineal list --filter`.
package filter

import (
	"fmt"
	"log/slog"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/checker/decls"

	"github.com/tannerhaus/lineal/internal/provenance"
)

// Engine holds one compiled filter expression.
type Engine struct {
	env *cel.Env
	prg cel.Program
}

// New compiles a CEL expression over record variables. The expression
// must evaluate to a boolean, e.g.
//
//	artifact_type == "session" && session_id != ""
//	metadata.model == "opus"
func New(expression string) (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Declarations(
			decls.NewVar("id", decls.String),
			decls.NewVar("artifact_path", decls.String),
			decls.NewVar("artifact_type", decls.String),
			decls.NewVar("source_path", decls.String),
			decls.NewVar("source_type", decls.String),
			decls.NewVar("session_id", decls.String),
			decls.NewVar("metadata", decls.NewMapType(decls.String, decls.Dyn)),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create filter env: %w", err)
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expression, issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build filter program: %w", err)
	}

	return &Engine{env: env, prg: prg}, nil
}

// Match evaluates the filter against one record. Evaluation errors are
// logged and reported as non-matches; one odd record must not abort a
// whole listing.
func (e *Engine) Match(record provenance.Record) bool {
	metadata := record.Metadata.Interface()
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	out, _, err := e.prg.Eval(map[string]interface{}{
		"id":            record.ID,
		"artifact_path": record.ArtifactPath,
		"artifact_type": record.ArtifactType,
		"source_path":   record.SourcePath,
		"source_type":   record.SourceType,
		"session_id":    record.SessionID,
		"metadata":      metadata,
	})
	if err != nil {
		slog.Warn("filter evaluation failed", "record_id", record.ID, "error", err)
		return false
	}

	match, ok := out.Value().(bool)
	return ok && match
}

// Apply returns the records matching the filter, preserving log order.
func (e *Engine) Apply(records []provenance.Record) []provenance.Record {
	var matched []provenance.Record
	for _, record := range records {
		if e.Match(record) {
			matched = append(matched, record)
		}
	}
	return matched
}
