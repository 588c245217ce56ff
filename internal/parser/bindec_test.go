package parser

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBindec(t *testing.T) {
	tests := []struct {
		name string
		in   ByteField
		want uint32
	}{
		{name: "zero", in: ByteField{0x00, 0x00, 0x00, 0x00}, want: 0},
		{name: "max", in: ByteField{0xFF, 0xFF, 0xFF, 0xFF}, want: 4294967295},
		{name: "300", in: ByteField{0x00, 0x00, 0x01, 0x2C}, want: 300},
		{name: "msb only", in: ByteField{0x80, 0x00, 0x00, 0x00}, want: 0x80000000},
		{name: "lsb only", in: ByteField{0x00, 0x00, 0x00, 0x01}, want: 1},
		{name: "ordered", in: ByteField{0x01, 0x02, 0x03, 0x04}, want: 0x01020304},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Bindec(tt.in))
		})
	}
}

// TestBindecWeights 每个字节位置的权重为 2^(8*(3-i))
func TestBindecWeights(t *testing.T) {
	for pos := 0; pos < FieldSize; pos++ {
		for v := 0; v <= 0xFF; v++ {
			var b ByteField
			b[pos] = byte(v)
			want := uint32(v) << (8 * (FieldSize - 1 - pos))
			if got := Bindec(b); got != want {
				t.Fatalf("Bindec(%v) = %d, want %d", b, got, want)
			}
		}
	}
}

// TestBindecMatchesBigEndian 与标准库的大端序解码对照
func TestBindecMatchesBigEndian(t *testing.T) {
	// 线性同余序列, 结果可复现
	seed := uint32(2166136261)
	for i := 0; i < 100000; i++ {
		seed = seed*1664525 + 1013904223
		var b ByteField
		binary.BigEndian.PutUint32(b[:], seed)
		want := uint32(b[0])*(1<<24) + uint32(b[1])*(1<<16) + uint32(b[2])*(1<<8) + uint32(b[3])
		if got := Bindec(b); got != want || got != seed {
			t.Fatalf("Bindec(% x) = %d, want %d", b[:], got, want)
		}
	}
}
