package pin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	tests := []struct {
		name    string
		depths  []int
		wantErr bool
	}{
		{name: "six pins", depths: []int{1, 2, 3, 4, 5, 6}},
		{name: "single pin", depths: []int{7}},
		{name: "max pins", depths: []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
		{name: "max depth", depths: []int{MaxDepth}},
		{name: "empty", depths: nil, wantErr: true},
		{name: "too many pins", depths: tooManyPins(), wantErr: true},
		{name: "zero depth", depths: []int{1, 0, 3}, wantErr: true},
		{name: "negative depth", depths: []int{-1}, wantErr: true},
		{name: "depth too large", depths: []int{MaxDepth + 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := NewKey(tt.depths...)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, k.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.depths), k.Len())
			assert.Equal(t, tt.depths, depthsOf(k))
		})
	}
}

func depthsOf(k Key) []int {
	out := make([]int, k.Len())
	for i := range out {
		out[i] = k.Pin(i)
	}
	return out
}

func tooManyPins() []int {
	out := make([]int, MaxPins+1)
	for i := range out {
		out[i] = 1
	}
	return out
}

func TestMustKeyPanics(t *testing.T) {
	assert.Panics(t, func() { MustKey() })
	assert.NotPanics(t, func() { MustKey(1, 2) })
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		input   string
		want    []int
		wantErr bool
	}{
		{input: "1,2,3,4,5,6", want: []int{1, 2, 3, 4, 5, 6}},
		{input: "1 2 3", want: []int{1, 2, 3}},
		{input: "{ 2 1 4 3 6 5 }", want: []int{2, 1, 4, 3, 6, 5}},
		{input: "{7 7}", want: []int{7, 7}},
		{input: " 1, 2 ,3 ", want: []int{1, 2, 3}},
		{input: "", wantErr: true},
		{input: "1,a,3", wantErr: true},
		{input: "1,0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			k, err := ParseKey(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, depthsOf(k))
		})
	}
}

func TestKeyEqualityIsStructural(t *testing.T) {
	a := MustKey(1, 2, 3)
	b := MustKey(1, 2, 3)
	c := MustKey(1, 2, 4)

	assert.True(t, a == b)
	assert.False(t, a == c)

	m := map[Key]int{a: 1}
	assert.Equal(t, 1, m[b])
	_, ok := m[c]
	assert.False(t, ok)

	// Same leading pins, different length.
	assert.False(t, MustKey(1, 2) == MustKey(1, 2, 1))
}

func TestKeyCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Key
		want int
	}{
		{"equal", MustKey(1, 2, 3), MustKey(1, 2, 3), 0},
		{"last pin smaller", MustKey(1, 2, 3), MustKey(1, 2, 4), -1},
		{"first pin larger", MustKey(2, 1, 1), MustKey(1, 7, 7), 1},
		{"prefix sorts first", MustKey(1, 2), MustKey(1, 2, 1), -1},
		{"longer sorts after", MustKey(1, 2, 1), MustKey(1, 2), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
		})
	}
}

func TestKeyRendering(t *testing.T) {
	k := MustKey(1, 2, 3, 4, 5, 6)
	assert.Equal(t, "{ 1 2 3 4 5 6 }", k.String())
	assert.Equal(t, "{1 2 3 4 5 6}", k.Compact())

	assert.Equal(t, "{ }", Key{}.String())
	assert.Equal(t, "{}", Key{}.Compact())
}
