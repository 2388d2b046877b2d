package whisper

import (
	"bytes"
	"encoding/binary"

	"github.com/m-mizutani/hark"
)

const (
	wavHeaderSize    = 44
	wavBitsPerSample = 16
)

// encodeWAV wraps mono PCM16 samples in a RIFF/WAVE container.
func encodeWAV(audio *hark.Audio) []byte {
	dataSize := len(audio.Samples) * 2
	byteRate := audio.SampleRate * wavBitsPerSample / 8
	blockAlign := wavBitsPerSample / 8

	buf := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+dataSize))
	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16)) // fmt chunk size
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))  // PCM
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))  // mono
	_ = binary.Write(buf, binary.LittleEndian, uint32(audio.SampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	_ = binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(buf, binary.LittleEndian, uint16(wavBitsPerSample))

	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(dataSize))
	_ = binary.Write(buf, binary.LittleEndian, audio.Samples)

	return buf.Bytes()
}
