package parser

// FieldSize 是每个字段的字节数
const FieldSize = 4

// ByteField 是从文件中读出的原始 4 字节, 下标 0 为最先读到的字节
type ByteField [FieldSize]byte

// Bindec decodes b as a big-endian unsigned 32-bit integer: byte 0 is the
// most significant. The array type guarantees exactly four input bytes.
func Bindec(b ByteField) uint32 {
	var v uint32
	for i := 0; i < FieldSize; i++ {
		v = v<<8 | uint32(b[i])
	}
	return v
}
