package variant

import "testing"

func TestTypeKeyLowercasesAndHyphenates(t *testing.T) {
	cases := map[string]string{
		"Snake Plant":        "snake-plant",
		"Fiddle  \t Leaf":    "fiddle-leaf",
		"MONSTERA":           "monstera",
		"":                   "",
		" leading":           "-leading",
		"already-hyphenated": "already-hyphenated",
		"multi\nline\r\nid":  "multi-line-id",
	}
	for in, want := range cases {
		if got := TypeKey(in); got != want {
			t.Fatalf("TypeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveIsTotal(t *testing.T) {
	table := DefaultTable()
	inputs := []string{"", "monstera", "unknown", "Monstera", "snake plant", "\x00", "default"}
	for _, in := range inputs {
		p := table.Resolve(in)
		if err := p.Validate(); err != nil {
			t.Fatalf("Resolve(%q) returned invalid params: %v", in, err)
		}
	}

	var nilTable *Table
	if err := nilTable.Resolve("anything").Validate(); err != nil {
		t.Fatalf("nil table should still resolve the default: %v", err)
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	table := DefaultTable()
	def := table.Resolve(DefaultKey)
	if got := table.Resolve("cactus"); got != def {
		t.Fatalf("expected default params for unknown key, got %+v", got)
	}
	if got := table.Resolve(KeyMonstera); got.LeafCount != 6 || got.Height != 1.2 || got.Spread != 0.5 {
		t.Fatalf("unexpected monstera params: %+v", got)
	}
}

func TestBuiltInVariants(t *testing.T) {
	type entry struct {
		stem, leaf               string
		height, leafSize, spread float64
		leafCount                int
	}
	want := map[string]entry{
		KeyMonstera:   {"#2d5a27", "#4a8a3c", 1.2, 0.4, 0.5, 6},
		KeyFiddleLeaf: {"#2d5a27", "#3a6a2d", 1.5, 0.5, 0.6, 4},
		KeySnakePlant: {"#2d5a27", "#4a8a3c", 1.0, 0.3, 0.4, 8},
		DefaultKey:    {"#2d5a27", "#4a8a3c", 1.0, 0.3, 0.4, 6},
	}
	table := DefaultTable()
	if keys := table.Keys(); len(keys) != len(want) {
		t.Fatalf("expected %d built-in variants, got %v", len(want), keys)
	}
	for key, w := range want {
		p, ok := table.Lookup(key)
		if !ok {
			t.Fatalf("%s: missing built-in entry", key)
		}
		got := entry{p.StemColor.Hex(), p.LeafColor.Hex(), p.Height, p.LeafSize, p.Spread, p.LeafCount}
		if got != w {
			t.Fatalf("%s: got %+v, want %+v", key, got, w)
		}
	}
}

func TestResolveIDReportsKeyUsed(t *testing.T) {
	table := DefaultTable()
	key, p := table.ResolveID("Snake Plant")
	if key != KeySnakePlant || p.LeafCount != 8 {
		t.Fatalf("expected snake-plant with 8 leaves, got %s %+v", key, p)
	}
	key, _ = table.ResolveID("Aloe Vera")
	if key != DefaultKey {
		t.Fatalf("expected default key for unknown id, got %s", key)
	}
}

func TestNewTableRejectsInvalidExtras(t *testing.T) {
	if _, err := NewTable(map[string]Params{"broken": {Height: 0, LeafSize: 1, LeafCount: 1}}); err == nil {
		t.Fatalf("expected zero height to be rejected")
	}
	if _, err := NewTable(map[string]Params{"": DefaultTable().Resolve(DefaultKey)}); err == nil {
		t.Fatalf("expected empty key to be rejected")
	}

	fern := Params{StemColor: NewColor(1, 2, 3), LeafColor: NewColor(4, 5, 6), Height: 0.6, LeafSize: 0.2, LeafCount: 12, Spread: 0.35}
	table, err := NewTable(map[string]Params{"fern": fern})
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	if got := table.Resolve("fern"); got != fern {
		t.Fatalf("expected fern override, got %+v", got)
	}
	if len(table.Keys()) != 5 {
		t.Fatalf("expected 5 keys, got %v", table.Keys())
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#2d5a27")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.R != 0x2d || c.G != 0x5a || c.B != 0x27 || c.A != 255 {
		t.Fatalf("unexpected colour %+v", c)
	}
	if c.Hex() != "#2d5a27" {
		t.Fatalf("round trip mismatch: %s", c.Hex())
	}
	for _, bad := range []string{"", "#12345", "#zzzzzz", "1234567"} {
		if _, err := ParseHex(bad); err == nil {
			t.Fatalf("expected %q to fail", bad)
		}
	}
}
