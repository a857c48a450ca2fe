package ringbus

import "testing"

func TestAlignUp(t *testing.T) {
	word := wordSize // 8 on 64-bit

	cases := map[int]int{
		0:              0,
		1:              word,
		word:           word,
		word + 1:       2 * word,
		2 * word:       2 * word,
		2*word + 1:     3 * word,
		headerSize:     word,
		headerSize - 1: word,
	}

	for in, want := range cases {
		if got := AlignUp(in); got != want {
			t.Errorf("AlignUp(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	buf := make([]byte, headerSize)
	h := Header{Source: 7, MessageID: 42, Size: 16}
	putHeader(buf, h)

	got := getHeader(buf)
	if got != h {
		t.Errorf("got %+v, want %+v", got, h)
	}
}
