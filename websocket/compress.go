package websocket

import (
	"github.com/golang/snappy"
)

// CompressPayload сжимает полезную нагрузку перед отправкой клиенту
func CompressPayload(data []byte) []byte {
	return snappy.Encode(nil, data)
}

// DecompressPayload распаковывает полезную нагрузку
func DecompressPayload(data []byte) ([]byte, error) {
	decompressed, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, err
	}
	return decompressed, nil
}
