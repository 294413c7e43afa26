package encoding

import (
	"testing"

	"github.com/mtlynch/friz/format"
)

func TestAppendMinimalLongSelection(t *testing.T) {
	tests := []struct {
		v       int64
		wantTag format.Tag
	}{
		{0, format.LongZero},
		{1, format.LongSm},
		{-128, format.LongSm},
		{127, format.LongSm},
		{128, format.LongMd},
		{-32768, format.LongMd},
		{32767, format.LongMd},
		{32768, format.LongLg},
		{-2147483648, format.LongLg},
		{2147483647, format.LongLg},
		{2147483648, format.LongXl},
		{-2147483649, format.LongXl},
		{9223372036854775807, format.LongXl},
	}
	for _, tt := range tests {
		out := AppendMinimalLong(nil, tt.v)
		gotTag := format.Tag(int8(out[0]))
		if gotTag != tt.wantTag {
			t.Errorf("AppendMinimalLong(%d): tag = %v, want %v", tt.v, gotTag, tt.wantTag)
		}

		got, rest, err := ReadMinimalLong(gotTag, out[1:])
		if err != nil {
			t.Fatalf("ReadMinimalLong(%d): %v", tt.v, err)
		}
		if len(rest) != 0 {
			t.Errorf("leftover bytes decoding %d: %d", tt.v, len(rest))
		}
		if got != tt.v {
			t.Errorf("round trip %d: got %d", tt.v, got)
		}
	}
}

func TestReadMinimalLongInvalidTag(t *testing.T) {
	if _, _, err := ReadMinimalLong(format.StrSm, []byte{1, 2, 3, 4}); err == nil {
		t.Error("expected error decoding a non-long tag as a minimal-width long")
	}
}
