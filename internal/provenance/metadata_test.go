package provenance

import (
	"encoding/json"
	"testing"
)

func TestMeta_Unmarshal(t *testing.T) {
	raw := `{"tool":"forge","tokens":1234,"reviewed":true,"nested":{"depth":2},"tags":["go","cli"],"missing":null}`

	var m Meta
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if s, ok := m["tool"].AsString(); !ok || s != "forge" {
		t.Errorf("tool = %v %v, want forge", s, ok)
	}
	if n, ok := m["tokens"].AsNumber(); !ok || n != 1234 {
		t.Errorf("tokens = %v %v, want 1234", n, ok)
	}
	if b, ok := m["reviewed"].AsBool(); !ok || !b {
		t.Errorf("reviewed = %v %v, want true", b, ok)
	}
	nested, ok := m["nested"].AsMap()
	if !ok {
		t.Fatal("nested is not a map")
	}
	if d, ok := nested["depth"].AsNumber(); !ok || d != 2 {
		t.Errorf("nested.depth = %v %v, want 2", d, ok)
	}
	list, ok := m["tags"].AsList()
	if !ok || len(list) != 2 {
		t.Fatalf("tags = %v (ok=%v), want 2 entries", list, ok)
	}
	if s, _ := list[0].AsString(); s != "go" {
		t.Errorf("tags[0] = %q, want go", s)
	}
	if m["missing"].Kind() != KindNull {
		t.Errorf("missing kind = %v, want KindNull", m["missing"].Kind())
	}
}

func TestMeta_RoundTrip(t *testing.T) {
	raw := `{"nested":{"ok":true},"score":0.85,"title":"retry backoff"}`

	var m Meta
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var again Meta
	if err := json.Unmarshal(out, &again); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}
	if s, _ := again["title"].AsString(); s != "retry backoff" {
		t.Errorf("title after round trip = %q", s)
	}
	if n, _ := again["score"].AsNumber(); n != 0.85 {
		t.Errorf("score after round trip = %v", n)
	}
}

func TestMeta_Interface(t *testing.T) {
	var m Meta
	if err := json.Unmarshal([]byte(`{"a":"x","b":2,"c":{"d":false}}`), &m); err != nil {
		t.Fatal(err)
	}

	plain := m.Interface()
	if plain["a"] != "x" {
		t.Errorf("a = %v", plain["a"])
	}
	if plain["b"] != 2.0 {
		t.Errorf("b = %v", plain["b"])
	}
	inner, ok := plain["c"].(map[string]interface{})
	if !ok || inner["d"] != false {
		t.Errorf("c = %v", plain["c"])
	}

	if Meta(nil).Interface() != nil {
		t.Error("nil meta should unwrap to nil")
	}
}

func TestRecord_MetadataDecodes(t *testing.T) {
	raw := `{"id":"r1","artifact_path":"/out/a.md","artifact_type":"session","source_path":"/in/t.jsonl","source_type":"transcript","metadata":{"model":"opus","turns":42}}`

	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	if s, ok := record.Metadata["model"].AsString(); !ok || s != "opus" {
		t.Errorf("metadata model = %q %v", s, ok)
	}
	if n, ok := record.Metadata["turns"].AsNumber(); !ok || n != 42 {
		t.Errorf("metadata turns = %v %v", n, ok)
	}
}
