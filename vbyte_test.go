package rlz

import (
	"bytes"
	"errors"
	"testing"

	"pgregory.net/rapid"
)

func TestVByte_KnownValues(t *testing.T) {
	cases := []struct {
		num  uint32
		want []byte
	}{
		{0, []byte{0x80}},
		{127, []byte{0xFF}},
		{128, []byte{0x00, 0x81}},
		{16383, []byte{0x7F, 0xFF}},
		{16384, []byte{0x00, 0x00, 0x81}},
		{1<<32 - 1, []byte{0x7F, 0x7F, 0x7F, 0x7F, 0x8F}},
	}
	for _, tc := range cases {
		got := appendVByte(nil, tc.num)
		if !bytes.Equal(got, tc.want) {
			t.Errorf("appendVByte(%d) = % x, want % x", tc.num, got, tc.want)
		}
		val, n, err := readVByte(got)
		if err != nil {
			t.Fatalf("readVByte(% x): %v", got, err)
		}
		if val != tc.num || n != len(tc.want) {
			t.Errorf("readVByte(% x) = (%d, %d), want (%d, %d)", got, val, n, tc.num, len(tc.want))
		}
	}
}

func TestVByte_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		num := rapid.Uint32().Draw(t, "num")
		buf := appendVByte(nil, num)
		val, n, err := readVByte(buf)
		if err != nil {
			t.Fatalf("readVByte: %v", err)
		}
		if val != num {
			t.Fatalf("round-trip mismatch: got %d want %d", val, num)
		}
		if n != len(buf) {
			t.Fatalf("consumed %d of %d bytes", n, len(buf))
		}
	})
}

func TestVByte_ConsumesPrefixOnly(t *testing.T) {
	buf := appendVByte(nil, 300)
	buf = append(buf, 0xDE, 0xAD)
	val, n, err := readVByte(buf)
	if err != nil {
		t.Fatalf("readVByte: %v", err)
	}
	if val != 300 || n != 2 {
		t.Fatalf("readVByte = (%d, %d), want (300, 2)", val, n)
	}
}

func TestVByte_Truncated(t *testing.T) {
	inputs := [][]byte{
		nil,
		{0x00},
		{0x7F, 0x7F},
		{0x00, 0x00, 0x00, 0x00, 0x00}, // no terminator within 5 bytes
	}
	for _, in := range inputs {
		if _, _, err := readVByte(in); !errors.Is(err, ErrTruncatedFrame) {
			t.Errorf("readVByte(% x) err = %v, want ErrTruncatedFrame", in, err)
		}
	}
}
