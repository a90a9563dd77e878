package filter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tannerhaus/lineal/internal/provenance"
)

func sampleRecords(t *testing.T) []provenance.Record {
	t.Helper()
	raw := []string{
		`{"id":"r1","artifact_path":"/out/a.md","artifact_type":"session","source_path":"/in/t1.jsonl","source_type":"transcript","session_id":"sess-1","metadata":{"model":"opus","turns":42}}`,
		`{"id":"r2","artifact_path":"/out/b.md","artifact_type":"learning","source_path":"/out/a.md","source_type":"session","session_id":"sess-1"}`,
		`{"id":"r3","artifact_path":"/out/c.md","artifact_type":"session","source_path":"/in/t2.jsonl","source_type":"transcript"}`,
	}
	records := make([]provenance.Record, len(raw))
	for i, line := range raw {
		require.NoError(t, json.Unmarshal([]byte(line), &records[i]))
	}
	return records
}

func TestEngine_Apply(t *testing.T) {
	records := sampleRecords(t)

	tests := []struct {
		name       string
		expression string
		wantIDs    []string
	}{
		{
			name:       "by artifact type",
			expression: `artifact_type == "session"`,
			wantIDs:    []string{"r1", "r3"},
		},
		{
			name:       "transcript roots with a session",
			expression: `source_type == "transcript" && session_id != ""`,
			wantIDs:    []string{"r1"},
		},
		{
			name:       "metadata lookup",
			expression: `"model" in metadata && metadata.model == "opus"`,
			wantIDs:    []string{"r1"},
		},
		{
			name:       "path predicate",
			expression: `artifact_path.startsWith("/out/") && id != "r2"`,
			wantIDs:    []string{"r1", "r3"},
		},
		{
			name:       "no matches",
			expression: `artifact_type == "index"`,
			wantIDs:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := New(tt.expression)
			require.NoError(t, err)

			matched := engine.Apply(records)
			var gotIDs []string
			for _, r := range matched {
				gotIDs = append(gotIDs, r.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestNew_CompileError(t *testing.T) {
	_, err := New(`artifact_type ==`)
	assert.Error(t, err)
}

func TestNew_UnknownVariable(t *testing.T) {
	_, err := New(`no_such_field == "x"`)
	assert.Error(t, err)
}

func TestEngine_Match_NonBoolean(t *testing.T) {
	engine, err := New(`artifact_type`)
	// A bare string expression compiles but is not a boolean; it must
	// never match.
	require.NoError(t, err)
	assert.False(t, engine.Match(sampleRecords(t)[0]))
}
