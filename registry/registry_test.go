package registry

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/mtlynch/friz/compress"
	"github.com/mtlynch/friz/errs"
)

type pointA struct{ N int }
type pointB struct{ N int }

func TestCustomTypeIsolationByteID(t *testing.T) {
	Reset()
	defer Reset()

	calledA, calledB := false, false

	if err := ExtendFreeze(pointA{}, ByteID(1), func(sink Sink, v any) error {
		calledA = true
		return nil
	}); err != nil {
		t.Fatalf("ExtendFreeze pointA: %v", err)
	}
	if err := ExtendFreeze(pointB{}, ByteID(2), func(sink Sink, v any) error {
		calledB = true
		return nil
	}); err != nil {
		t.Fatalf("ExtendFreeze pointB: %v", err)
	}

	idA, fnA, ok := LookupFreezeByType(reflect.TypeOf(pointA{}))
	if !ok || idA.ByteValue() != 1 {
		t.Fatalf("expected pointA registered under byte id 1, got %+v ok=%v", idA, ok)
	}
	if err := fnA(nil, pointA{}); err != nil {
		t.Fatalf("fnA: %v", err)
	}
	if !calledA || calledB {
		t.Errorf("expected only pointA's encoder to run, calledA=%v calledB=%v", calledA, calledB)
	}

	idB, _, ok := LookupFreezeByType(reflect.TypeOf(pointB{}))
	if !ok || idB.ByteValue() != 2 {
		t.Fatalf("expected pointB registered under byte id 2, got %+v ok=%v", idB, ok)
	}
}

func TestCustomTypeIsolationKeywordID(t *testing.T) {
	Reset()
	defer Reset()

	if err := ExtendFreeze(pointA{}, KeywordID("app/pointA"), func(sink Sink, v any) error { return nil }); err != nil {
		t.Fatalf("ExtendFreeze: %v", err)
	}

	h, ok := KeywordHashOf("app/pointA")
	if !ok {
		t.Fatal("expected a registered hash for app/pointA")
	}
	if _, ok := KeywordHashOf("app/pointB"); ok {
		t.Error("app/pointB must not have a registered hash")
	}

	if err := ExtendThaw(KeywordID("app/pointA"), func(source Source) (any, error) { return pointA{}, nil }); err != nil {
		t.Fatalf("ExtendThaw: %v", err)
	}
	if _, ok := LookupThawByHash(h); !ok {
		t.Error("expected a decoder registered under app/pointA's hash")
	}
}

func TestByteIDOutOfRangeRejected(t *testing.T) {
	Reset()
	defer Reset()

	if err := ExtendFreeze(pointA{}, ByteID(0), func(sink Sink, v any) error { return nil }); err == nil {
		t.Error("byte id 0 is out of range 1..128 and must be rejected")
	}
	if err := ExtendFreeze(pointA{}, ByteID(129), func(sink Sink, v any) error { return nil }); err == nil {
		t.Error("byte id 129 is out of range 1..128 and must be rejected")
	}
}

func TestKeywordHashReservedBandRejected(t *testing.T) {
	Reset()
	defer Reset()

	// Search for a name whose hash lands in the byte-id reserved band
	// ([-128,-1]); KeywordHash must refuse to register it.
	var collidingName string
	for i := 0; i < 1_000_000; i++ {
		name := "probe-" + strconv.Itoa(i)
		if _, err := KeywordHash(name); err != nil {
			collidingName = name
			break
		}
	}
	if collidingName == "" {
		t.Skip("no colliding name found in search budget; reserved band is only 128/65536 of the space")
	}

	err := ExtendFreeze(pointA{}, KeywordID(collidingName), func(sink Sink, v any) error { return nil })
	if err == nil {
		t.Fatalf("expected ExtendFreeze to reject reserved-band hash for %q", collidingName)
	}
	if !errors.Is(err, errs.ErrCustomHashReserved) {
		t.Errorf("expected errs.ErrCustomHashReserved, got %v", err)
	}
}

func TestFallbackPolicyDefaultIsStrict(t *testing.T) {
	SetFreezeFallback(PolicyStrict)
	policy, custom := Fallback()
	if policy != PolicyStrict {
		t.Errorf("expected PolicyStrict, got %v", policy)
	}
	if custom != nil {
		t.Errorf("expected no custom fallback installed")
	}
}

func TestSetCustomFreezeFallbackOverridesPolicy(t *testing.T) {
	defer SetFreezeFallback(PolicyStrict)

	fn := func(sink Sink, v any) error { return nil }
	SetCustomFreezeFallback(fn)

	_, custom := Fallback()
	if custom == nil {
		t.Fatal("expected a custom fallback callable to be installed")
	}
}

func TestAutoCompressorRoundTrip(t *testing.T) {
	called := false
	SetAutoCompressor(func(data []byte) compress.Compressor {
		called = true
		return compress.NoOpCodec{}
	})

	fn, ok := AutoCompressor()
	if !ok {
		t.Fatal("expected an installed auto-compressor callable")
	}
	fn([]byte("x"))
	if !called {
		t.Error("expected the installed callable to run")
	}
}
