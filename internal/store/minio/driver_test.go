package minio

import (
	"testing"

	"github.com/harborview/gateway/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestRangeSpec(t *testing.T) {
	tests := []struct {
		name string
		r    store.ByteRange
		want string
	}{
		{"bounded", store.ByteRange{Start: 0, End: 1023}, "bytes=0-1023"},
		{"mid", store.ByteRange{Start: 100, End: 200}, "bytes=100-200"},
		{"open ended", store.ByteRange{Start: 512, End: -1}, "bytes=512-"},
		{"open from zero", store.ByteRange{Start: 0, End: -1}, "bytes=0-"},
		{"suffix", store.ByteRange{Suffix: 500}, "bytes=-500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rangeSpec(&tt.r))
		})
	}
}
