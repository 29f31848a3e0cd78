package websocket

import (
	"bytes"
	"testing"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	payload := []byte(`[{"kind":"stockout","severity":"critical","subject":"Инсулин"}]`)

	compressed := CompressPayload(payload)
	decompressed, err := DecompressPayload(compressed)
	if err != nil {
		t.Fatalf("неожиданная ошибка при распаковке: %v", err)
	}

	if !bytes.Equal(payload, decompressed) {
		t.Fatalf("данные после распаковки не совпадают: %q", decompressed)
	}
}

func TestDecompressPayload_InvalidData(t *testing.T) {
	if _, err := DecompressPayload([]byte{0xff, 0x01, 0x02}); err == nil {
		t.Fatal("ожидалась ошибка для поврежденных данных")
	}
}
