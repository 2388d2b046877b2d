package whisper

var EncodeWAV = encodeWAV
