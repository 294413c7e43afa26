package format

import "testing"

func TestClassifyLength(t *testing.T) {
	tests := []struct {
		n    int
		want SizeClass
	}{
		{0, SizeEmpty},
		{1, SizeSmall},
		{127, SizeSmall},
		{128, SizeMedium},
		{32767, SizeMedium},
		{32768, SizeLarge},
		{1 << 20, SizeLarge},
	}
	for _, tt := range tests {
		if got := ClassifyLength(tt.n); got != tt.want {
			t.Errorf("ClassifyLength(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestCustomTagRoundTrip(t *testing.T) {
	for id := uint8(1); id <= 128; id++ {
		tag := CustomTag(id)
		if !IsCustomByteTag(tag) {
			t.Fatalf("CustomTag(%d) = %d not recognized as custom byte tag", id, tag)
		}
		if got := CustomIDFromTag(tag); got != id {
			t.Errorf("CustomIDFromTag(CustomTag(%d)) = %d, want %d", id, got, id)
		}
	}
}

func TestIsCustomByteTag(t *testing.T) {
	if IsCustomByteTag(Nil) {
		t.Error("Nil must not be a custom byte tag")
	}
	if IsCustomByteTag(StrSm) {
		t.Error("StrSm must not be a custom byte tag")
	}
	if !IsCustomByteTag(CustomTag(1)) {
		t.Error("CustomTag(1) must be a custom byte tag")
	}
}

func TestPinnedTagValues(t *testing.T) {
	// These specific values are fixed by spec.md's worked examples (S1-S6)
	// and must never drift.
	cases := map[string]struct {
		got, want Tag
	}{
		"StrSm":          {StrSm, 105},
		"Vec0":           {Vec0, 17},
		"MapSm":          {MapSm, 112},
		"PrefixedCustom": {PrefixedCustom, 82},
	}
	for name, c := range cases {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", name, c.got, c.want)
		}
	}
}

func TestTagStringNoPanic(t *testing.T) {
	tags := []Tag{Nil, BoolTrue, Char, LongZero, BigInt, StrSm, Vec0, MapSm,
		PrefixedCustom, NoTag, CustomTag(5), MapDepr2, BoolLegacy}
	for _, tag := range tags {
		if tag.String() == "" {
			t.Errorf("Tag(%d).String() returned empty", tag)
		}
	}
}

func TestNoTagOutsideRealRange(t *testing.T) {
	if NoTag == Nil {
		t.Error("NoTag must not collide with Nil")
	}
	if IsCustomByteTag(NoTag) {
		t.Error("NoTag must not be in the custom byte tag band")
	}
}
