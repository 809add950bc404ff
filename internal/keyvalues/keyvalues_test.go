package keyvalues

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// binObject / binString / etc. assemble binary KeyValues blobs the way
// the backend emits them so the tests don't depend on fixture files.
func binString(name, value string) []byte {
	b := []byte{binTypeString}
	b = append(b, name...)
	b = append(b, 0)
	b = append(b, value...)
	b = append(b, 0)
	return b
}

func binInt32(name string, v int32) []byte {
	b := []byte{binTypeInt32}
	b = append(b, name...)
	b = append(b, 0)
	b = append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	return b
}

func binUint64(name string, v uint64) []byte {
	b := []byte{binTypeUint64}
	b = append(b, name...)
	b = append(b, 0)
	for i := 0; i < 8; i++ {
		b = append(b, byte(v>>(8*i)))
	}
	return b
}

func binObject(name string, entries ...[]byte) []byte {
	b := []byte{binTypeObject}
	b = append(b, name...)
	b = append(b, 0)
	for _, e := range entries {
		b = append(b, e...)
	}
	return append(b, binTypeEnd)
}

func TestParseBinary(t *testing.T) {
	blob := binObject("303386",
		binString("name", "Dota 2"),
		binInt32("billingtype", 12),
		binUint64("masterid", 76561198044497130),
		binObject("appids",
			binInt32("0", 570),
			binInt32("1", 816),
		),
	)
	// The backend closes the document with a second end marker.
	blob = append(blob, binTypeAltEnd)

	got, err := ParseBinary(blob)
	if err != nil {
		t.Fatalf("ParseBinary() returned error: %v", err)
	}

	want := Object{
		"303386": Object{
			"name":        "Dota 2",
			"billingtype": int64(12),
			"masterid":    uint64(76561198044497130),
			"appids": Object{
				"0": int64(570),
				"1": int64(816),
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseBinary() mismatch; diff:\n%s", diff)
	}
}

func TestParseBinaryErrors(t *testing.T) {
	tests := []struct {
		name string
		blob []byte
	}{
		{"name missing terminator", []byte{binTypeString, 'a', 'b'}},
		{"int32 payload short", append([]byte{binTypeInt32, 'n', 0x00}, 0x01, 0x02)},
		{"unterminated object", []byte{binTypeObject, 'o', 0x00, binTypeInt32}},
		{"unknown type marker", []byte{0x42, 'n', 0x00, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBinary(tt.blob); err == nil {
				t.Error("ParseBinary() returned nil error for malformed blob")
			}
		})
	}
}

func TestParseText(t *testing.T) {
	doc := `"appinfo"
{
	// upstream comment line
	"appid"		"730"
	"common"
	{
		"name"		"Counter-Strike 2"
		"type"		"Game"
	}
	"extended"
	{
		"developer"	"Valve"
	}
}`

	got, err := ParseText([]byte(doc))
	if err != nil {
		t.Fatalf("ParseText() returned error: %v", err)
	}

	want := Object{
		"appinfo": Object{
			"appid": "730",
			"common": Object{
				"name": "Counter-Strike 2",
				"type": "Game",
			},
			"extended": Object{
				"developer": "Valve",
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseText() mismatch; diff:\n%s", diff)
	}
}

func TestParseTextEscapesAndBareTokens(t *testing.T) {
	doc := "root { quoted \"line one\\nline two\" bare value }"

	got, err := ParseText([]byte(doc))
	if err != nil {
		t.Fatalf("ParseText() returned error: %v", err)
	}

	want := Object{
		"root": Object{
			"quoted": "line one\nline two",
			"bare":   "value",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseText() mismatch; diff:\n%s", diff)
	}
}

func TestParseTextErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"dangling key", `"lonely"`},
		{"unterminated block", `"a" { "k" "v"`},
		{"value without key", `{ "k" "v" }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseText([]byte(tt.doc)); err == nil {
				t.Error("ParseText() returned nil error for malformed document")
			}
		})
	}
}

func TestObjectAccessors(t *testing.T) {
	o := Object{
		"stats": Object{
			"1": Object{
				"bits": Object{
					"5": Object{
						"display": Object{"name": Object{"english": "Head Hunter"}},
						"name":    "HEADSHOTS_100",
					},
				},
			},
		},
		"version": int64(2),
	}

	if child, ok := o.Child("stats", "1", "bits"); !ok || len(child) != 1 {
		t.Errorf("Child(stats,1,bits) = %v, %v; want one entry, true", child, ok)
	}
	if _, ok := o.Child("stats", "1", "missing"); ok {
		t.Error("Child() reported a missing path as present")
	}
	if _, ok := o.Child("stats", "1", "bits", "5", "name"); ok {
		t.Error("Child() descended into a string leaf")
	}

	if s, ok := o.String("stats", "1", "bits", "5", "name"); !ok || s != "HEADSHOTS_100" {
		t.Errorf("String() = %q, %v; want HEADSHOTS_100, true", s, ok)
	}
	if s, ok := o.String("version"); !ok || s != "2" {
		t.Errorf("String(version) = %q, %v; want 2, true", s, ok)
	}
	if _, ok := o.String("stats", "1", "bits"); ok {
		t.Error("String() rendered a nested object")
	}

	if n, ok := o.Int("version"); !ok || n != 2 {
		t.Errorf("Int(version) = %d, %v; want 2, true", n, ok)
	}
	if _, ok := o.Int("stats", "1", "bits", "5", "name"); ok {
		t.Error("Int() parsed a non-numeric leaf")
	}
}
