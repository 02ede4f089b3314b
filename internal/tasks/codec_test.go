package tasks

import (
	"errors"
	"reflect"
	"testing"

	"taskmanager/internal/models"
)

func TestEncode_WritesVersionedEnvelope(t *testing.T) {
	data, err := Encode([]models.Task{{ID: "1", Text: "Buy milk"}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	want := `{"version":1,"tasks":[{"id":"1","text":"Buy milk","completed":false}]}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}

func TestEncode_NilListIsEmptyArray(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if string(data) != `{"version":1,"tasks":[]}` {
		t.Errorf("unexpected encoding %s", data)
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	in := []models.Task{
		{ID: "1", Text: "Buy milk", Completed: true},
		{ID: "2", Text: "Walk the dog"},
		{ID: "3", Text: "  padded  "},
	}

	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}
}

func TestDecode_LegacyArray(t *testing.T) {
	blob := `[{"id":"1700000000000","text":"Buy milk","completed":false},{"id":"1700000000001","text":"Pay rent","completed":true}]`

	out, err := Decode([]byte(blob))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(out))
	}
	if out[1].Text != "Pay rent" || !out[1].Completed {
		t.Errorf("unexpected second task %+v", out[1])
	}
}

func TestDecode_EmptyArrays(t *testing.T) {
	for _, blob := range []string{`[]`, `{"version":1,"tasks":[]}`, `{"version":1}`} {
		out, err := Decode([]byte(blob))
		if err != nil {
			t.Errorf("%s: unexpected error %v", blob, err)
			continue
		}
		if out == nil || len(out) != 0 {
			t.Errorf("%s: expected empty non-nil list, got %#v", blob, out)
		}
	}
}

func TestDecode_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{name: "empty", blob: ""},
		{name: "whitespace", blob: "   "},
		{name: "not json", blob: "hello"},
		{name: "null", blob: "null"},
		{name: "truncated array", blob: `[{"id":"1","text":"a"`},
		{name: "truncated envelope", blob: `{"version":1,"tasks":[`},
		{name: "unknown version", blob: `{"version":2,"tasks":[]}`},
		{name: "missing version", blob: `{"tasks":[]}`},
		{name: "wrong field type", blob: `[{"id":1,"text":"a","completed":false}]`},
		{name: "blank text", blob: `[{"id":"1","text":"  ","completed":false}]`},
		{name: "missing id", blob: `[{"text":"a","completed":false}]`},
		{name: "duplicate id", blob: `[{"id":"1","text":"a"},{"id":"1","text":"b"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.blob))
			if !errors.Is(err, ErrCorruptBlob) {
				t.Errorf("expected ErrCorruptBlob, got %v", err)
			}
		})
	}
}
