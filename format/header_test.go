package format

import "testing"

func TestMetaByteRoundTrip(t *testing.T) {
	for b := byte(0); b < 14; b++ {
		compressor, encryptor, ok := DecodeMetaByte(b)
		if !ok {
			t.Fatalf("DecodeMetaByte(%d) not ok", b)
		}
		got, ok := MetaByteFor(compressor, encryptor)
		if !ok {
			t.Fatalf("MetaByteFor(%s, %s) not ok", compressor, encryptor)
		}
		if got != b {
			t.Errorf("round trip for row %d: got meta byte %d", b, got)
		}
	}
}

func TestDecodeMetaByteOutOfRange(t *testing.T) {
	if _, _, ok := DecodeMetaByte(14); ok {
		t.Error("DecodeMetaByte(14) should not be recognized, table has only 14 rows")
	}
	if _, _, ok := DecodeMetaByte(255); ok {
		t.Error("DecodeMetaByte(255) should not be recognized")
	}
}

func TestMetaByteForUnknownCombination(t *testing.T) {
	if _, ok := MetaByteFor(CompressorCustom, EncryptorAES128SHA512); ok {
		t.Error("(custom, aes128-sha512) is not in the closed table and must not resolve")
	}
}

func TestHeaderEncodeDecode(t *testing.T) {
	hdr := Header{Compressor: CompressorLZ4, Encryptor: EncryptorAES128SHA512}
	encoded, err := hdr.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if encoded[0] != 'N' || encoded[1] != 'P' || encoded[2] != 'Y' {
		t.Fatalf("Encode magic = %q, want NPY", encoded[0:3])
	}

	got, present, recognized := DecodeHeader(encoded[:])
	if !present || !recognized {
		t.Fatalf("DecodeHeader: present=%v recognized=%v", present, recognized)
	}
	if got != hdr {
		t.Errorf("DecodeHeader = %+v, want %+v", got, hdr)
	}
}

func TestHeaderEncodeUnrepresentableCombination(t *testing.T) {
	hdr := Header{Compressor: CompressorCustom, Encryptor: EncryptorAES128SHA512}
	if _, err := hdr.Encode(); err == nil {
		t.Error("Encode should fail for a combination absent from the closed table")
	}
}

func TestDecodeHeaderTooShort(t *testing.T) {
	_, present, recognized := DecodeHeader([]byte{'N', 'P'})
	if present || recognized {
		t.Error("short input must report both present and recognized as false")
	}
}

func TestDecodeHeaderWrongMagic(t *testing.T) {
	_, present, _ := DecodeHeader([]byte{'X', 'P', 'Y', 0})
	if present {
		t.Error("wrong magic bytes must report present=false")
	}
}

func TestDecodeHeaderUnrecognizedMetaByte(t *testing.T) {
	_, present, recognized := DecodeHeader([]byte{'N', 'P', 'Y', 200})
	if !present {
		t.Error("magic bytes matched, present should be true")
	}
	if recognized {
		t.Error("meta byte 200 is outside the closed table, recognized should be false")
	}
}
