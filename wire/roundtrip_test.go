package wire

import (
	"math/big"
	"testing"
	"time"

	"github.com/mtlynch/friz/value"
)

func roundTrip(t *testing.T, v any) any {
	t.Helper()

	w := NewWriter()
	if err := w.Freeze(v); err != nil {
		t.Fatalf("Freeze(%#v): %v", v, err)
	}

	r := NewReader(w.Bytes())
	got, err := r.Thaw()
	if err != nil {
		t.Fatalf("Thaw after Freeze(%#v): %v", v, err)
	}
	if r.Remaining() != 0 {
		t.Errorf("Freeze(%#v): %d trailing bytes after Thaw", v, r.Remaining())
	}

	return got
}

func TestRoundTripScalars(t *testing.T) {
	if got := roundTrip(t, nil); got != nil {
		t.Errorf("nil round trip: got %#v", got)
	}
	if got := roundTrip(t, true); got != true {
		t.Errorf("bool true round trip: got %#v", got)
	}
	if got := roundTrip(t, false); got != false {
		t.Errorf("bool false round trip: got %#v", got)
	}
	if got := roundTrip(t, value.Char('Z')); got != value.Char('Z') {
		t.Errorf("Char round trip: got %#v", got)
	}
	if got := roundTrip(t, int8(-12)); got != int8(-12) {
		t.Errorf("int8 round trip: got %#v", got)
	}
	if got := roundTrip(t, int16(-3000)); got != int16(-3000) {
		t.Errorf("int16 round trip: got %#v", got)
	}
	if got := roundTrip(t, int32(70000)); got != int32(70000) {
		t.Errorf("int32 round trip: got %#v", got)
	}
	if got := roundTrip(t, int64(-9999999999)); got != int64(-9999999999) {
		t.Errorf("int64 round trip: got %#v", got)
	}
	if got := roundTrip(t, 42); got != int64(42) {
		t.Errorf("int round trip: got %#v, want int64(42)", got)
	}
	if got := roundTrip(t, float32(1.5)); got != float32(1.5) {
		t.Errorf("float32 round trip: got %#v", got)
	}
	if got := roundTrip(t, 2.71828); got != 2.71828 {
		t.Errorf("float64 round trip: got %#v", got)
	}
	if got := roundTrip(t, "hello"); got != "hello" {
		t.Errorf("string round trip: got %#v", got)
	}
	if got := roundTrip(t, ""); got != "" {
		t.Errorf("empty string round trip: got %#v", got)
	}
}

func TestRoundTripStringSizeClasses(t *testing.T) {
	tests := []int{0, 1, 127, 128, 32767, 32768, 70000}
	for _, n := range tests {
		s := make([]byte, n)
		for i := range s {
			s[i] = 'a'
		}
		got := roundTrip(t, string(s))
		if got != string(s) {
			t.Errorf("string of length %d did not round trip", n)
		}
	}
}

func TestRoundTripBigInt(t *testing.T) {
	tests := []*big.Int{
		big.NewInt(0),
		big.NewInt(127),
		big.NewInt(-127),
		big.NewInt(300),
		new(big.Int).Lsh(big.NewInt(1), 1024), // forces the 4-byte-count path
	}
	for _, v := range tests {
		got := roundTrip(t, v)
		bi, ok := got.(*big.Int)
		if !ok || bi.Cmp(v) != 0 {
			t.Errorf("BigInt %v round trip: got %#v", v, got)
		}
	}
}

func TestRoundTripRatio(t *testing.T) {
	r := value.Ratio{Numerator: big.NewInt(22), Denominator: big.NewInt(7)}
	got := roundTrip(t, r).(value.Ratio)
	if got.Numerator.Cmp(r.Numerator) != 0 || got.Denominator.Cmp(r.Denominator) != 0 {
		t.Errorf("Ratio round trip: got %+v", got)
	}
}

// TestRoundTripBigRat covers the *big.Rat -> Ratio mapping: Go's standard
// rational type freezes through the same wire shape as value.Ratio.
func TestRoundTripBigRat(t *testing.T) {
	r := big.NewRat(22, 7)
	got := roundTrip(t, r).(value.Ratio)
	if got.Numerator.Cmp(r.Num()) != 0 || got.Denominator.Cmp(r.Denom()) != 0 {
		t.Errorf("*big.Rat round trip: got %+v, want %d/%d", got, r.Num(), r.Denom())
	}
}

func TestRoundTripBigDecimal(t *testing.T) {
	d := value.BigDecimal{Unscaled: big.NewInt(31415), Scale: 4}
	got := roundTrip(t, d).(value.BigDecimal)
	if got.Unscaled.Cmp(d.Unscaled) != 0 || got.Scale != d.Scale {
		t.Errorf("BigDecimal round trip: got %+v", got)
	}
}

func TestRoundTripKeywordSymbol(t *testing.T) {
	kw := value.Keyword{Namespace: "user", Name: "id"}
	if got := roundTrip(t, kw).(value.Keyword); got != kw {
		t.Errorf("Keyword round trip: got %+v", got)
	}

	bare := value.Keyword{Name: "active"}
	if got := roundTrip(t, bare).(value.Keyword); got != bare {
		t.Errorf("bare Keyword round trip: got %+v", got)
	}

	sym := value.Symbol{Namespace: "clojure.core", Name: "map"}
	if got := roundTrip(t, sym).(value.Symbol); got != sym {
		t.Errorf("Symbol round trip: got %+v", got)
	}
}

func TestRoundTripRegex(t *testing.T) {
	re := value.Regex{Source: "^[a-z]+$"}
	if got := roundTrip(t, re).(value.Regex); got != re {
		t.Errorf("Regex round trip: got %+v", got)
	}
}

func TestRoundTripBytes(t *testing.T) {
	tests := [][]byte{nil, {}, {0x01}, make([]byte, 200), make([]byte, 40000)}
	for _, b := range tests {
		got := roundTrip(t, b).([]byte)
		if len(got) != len(b) {
			t.Errorf("bytes length %d round trip: got length %d", len(b), len(got))
		}
	}
}

func TestRoundTripUUID(t *testing.T) {
	u := value.UUID{Hi: 0x0123456789abcdef, Lo: 0xfedcba9876543210}
	if got := roundTrip(t, u).(value.UUID); got != u {
		t.Errorf("UUID round trip: got %+v", got)
	}
}

func TestRoundTripDate(t *testing.T) {
	ts := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)
	got := roundTrip(t, ts).(time.Time)
	if !got.Equal(ts) {
		t.Errorf("Date round trip: got %v, want %v", got, ts)
	}
}

func TestRoundTripVectorFastPaths(t *testing.T) {
	tests := []struct {
		name string
		v    []any
	}{
		{"empty", []any{}},
		{"two", []any{int64(1), int64(2)}},
		{"three", []any{int64(1), int64(2), int64(3)}},
		{"one", []any{"solo"}},
		{"many", []any{int64(1), int64(2), int64(3), int64(4), int64(5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roundTrip(t, tt.v).([]any)
			if len(got) != len(tt.v) {
				t.Fatalf("length mismatch: got %d, want %d", len(got), len(tt.v))
			}
			for i := range got {
				if got[i] != tt.v[i] {
					t.Errorf("element %d: got %#v, want %#v", i, got[i], tt.v[i])
				}
			}
		})
	}
}

func TestRoundTripCountedCollections(t *testing.T) {
	items := []any{int64(1), "two", true}

	list := roundTrip(t, value.List(items)).(value.List)
	if len(list) != 3 {
		t.Errorf("List round trip: got %v", list)
	}

	set := roundTrip(t, value.Set(items)).(value.Set)
	if len(set) != 3 {
		t.Errorf("Set round trip: got %v", set)
	}

	sortedSet := roundTrip(t, value.SortedSet(items)).(value.SortedSet)
	if len(sortedSet) != 3 {
		t.Errorf("SortedSet round trip: got %v", sortedSet)
	}

	queue := roundTrip(t, value.Queue(items)).(value.Queue)
	if len(queue) != 3 {
		t.Errorf("Queue round trip: got %v", queue)
	}
}

func TestRoundTripEmptyCollectionsUseExplicitZeroCount(t *testing.T) {
	got := roundTrip(t, value.List(nil)).(value.List)
	if len(got) != 0 {
		t.Errorf("empty List round trip: got %v", got)
	}
}

func TestRoundTripSeqCounted(t *testing.T) {
	s := value.Seq{Items: []any{int64(1), int64(2), int64(3)}}
	got := roundTrip(t, s).(value.Seq)
	if len(got.Items) != 3 {
		t.Errorf("counted Seq round trip: got %+v", got)
	}
}

func TestRoundTripSeqLazy(t *testing.T) {
	source := []any{int64(10), int64(20), int64(30), int64(40)}
	s := value.Seq{Lazy: func(yield func(any) bool) {
		for _, item := range source {
			if !yield(item) {
				return
			}
		}
	}}

	got := roundTrip(t, s).(value.Seq)
	if len(got.Items) != len(source) {
		t.Fatalf("lazy Seq round trip: got %d items, want %d", len(got.Items), len(source))
	}
	for i, item := range got.Items {
		if item != source[i] {
			t.Errorf("lazy Seq element %d: got %#v, want %#v", i, item, source[i])
		}
	}
}

func TestRoundTripMap(t *testing.T) {
	m := map[any]any{"a": int64(1), "b": int64(2)}
	got := roundTrip(t, m).(map[any]any)
	if len(got) != len(m) {
		t.Fatalf("Map round trip: got %d entries, want %d", len(got), len(m))
	}
	for k, v := range m {
		if got[k] != v {
			t.Errorf("Map key %v: got %#v, want %#v", k, got[k], v)
		}
	}
}

func TestRoundTripSortedMap(t *testing.T) {
	sm := value.SortedMap{
		Keys:   []any{"a", "b", "c"},
		Values: []any{int64(1), int64(2), int64(3)},
	}
	got := roundTrip(t, sm).(value.SortedMap)
	if len(got.Keys) != 3 || len(got.Values) != 3 {
		t.Fatalf("SortedMap round trip: got %+v", got)
	}
	for i := range sm.Keys {
		if got.Keys[i] != sm.Keys[i] || got.Values[i] != sm.Values[i] {
			t.Errorf("SortedMap entry %d mismatch: got (%v,%v), want (%v,%v)",
				i, got.Keys[i], got.Values[i], sm.Keys[i], sm.Values[i])
		}
	}
}

func TestRoundTripRecord(t *testing.T) {
	rec := value.Record{
		TypeName: "myapp.User",
		Keys:     []any{"name", "age"},
		Values:   []any{"Ada", int64(36)},
	}
	got := roundTrip(t, rec).(value.Record)
	if got.TypeName != rec.TypeName {
		t.Errorf("Record type name: got %q, want %q", got.TypeName, rec.TypeName)
	}
	if len(got.Keys) != 2 || got.Values[0] != "Ada" {
		t.Errorf("Record body: got %+v", got)
	}
}

func TestRoundTripNestedVector(t *testing.T) {
	nested := []any{
		int64(1),
		[]any{"nested", true},
		value.List{int64(2), int64(3)},
	}
	got := roundTrip(t, nested).([]any)
	if len(got) != 3 {
		t.Fatalf("nested vector round trip: got %v", got)
	}
	inner, ok := got[1].([]any)
	if !ok || len(inner) != 2 {
		t.Errorf("nested element: got %#v", got[1])
	}
}

func TestRoundTripMetadata(t *testing.T) {
	wrapped := value.WithMeta{
		Meta:  map[any]any{"source": "test"},
		Value: int64(99),
	}
	got := roundTrip(t, wrapped).(value.WithMeta)
	if got.Value != int64(99) {
		t.Errorf("metadata-wrapped value: got %#v", got.Value)
	}
	if got.Meta["source"] != "test" {
		t.Errorf("metadata: got %#v", got.Meta)
	}
}

func TestMetadataWithEmptyMapIsNotWrapped(t *testing.T) {
	// extractMeta treats a WithMeta with an empty Meta as having no
	// metadata at all, so freezing it writes the bare inner value.
	w := NewWriter()
	if err := w.Freeze(value.WithMeta{Meta: map[any]any{}, Value: int64(7)}); err != nil {
		t.Fatalf("Freeze: %v", err)
	}

	r := NewReader(w.Bytes())
	got, err := r.Thaw()
	if err != nil {
		t.Fatalf("Thaw: %v", err)
	}
	if got != int64(7) {
		t.Errorf("got %#v, want bare int64(7)", got)
	}
}
