package api

import (
	"testing"
	"time"

	"github.com/harborview/gateway/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"photos/a.jpg", "a.jpg"},
		{"a.jpg", "a.jpg"},
		{"photos/2024/", "2024"},
		{"deep/nested/path/file.tar.gz", "file.tar.gz"},
		{"/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, objectName(tt.key))
		})
	}
}

func TestToObjectDTO(t *testing.T) {
	mod := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	leaf := toObjectDTO(store.ObjectInfo{Key: "docs/report.pdf", Size: 42, ETag: "abc", LastModified: mod})
	assert.Equal(t, "report.pdf", leaf.Name)
	assert.Equal(t, "pdf", leaf.Extension)
	assert.False(t, leaf.IsFolder)

	folder := toObjectDTO(store.ObjectInfo{Key: "docs/archive/"})
	assert.Equal(t, "archive", folder.Name)
	assert.True(t, folder.IsFolder)
	assert.Empty(t, folder.Extension)

	noExt := toObjectDTO(store.ObjectInfo{Key: "Makefile"})
	assert.Empty(t, noExt.Extension)
}

func TestClassifyMatch(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		needle    string
		matchType string
		ok        bool
	}{
		{"filename hit", "docs/Annual-Report.pdf", "report", "filename", true},
		{"path-only hit", "report-archive/notes.txt", "report", "path", true},
		{"miss", "images/cat.png", "report", "", false},
		{"filename wins over path", "reports/report.csv", "report", "filename", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mt, ok := classifyMatch(tt.key, tt.needle)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.matchType, mt)
		})
	}
}

func TestParseRangeHeader(t *testing.T) {
	tests := []struct {
		value   string
		want    *store.ByteRange
		wantErr bool
	}{
		{"bytes=0-1023", &store.ByteRange{Start: 0, End: 1023}, false},
		{"bytes=512-", &store.ByteRange{Start: 512, End: -1}, false},
		{"bytes=-500", &store.ByteRange{Suffix: 500}, false},
		{"bytes=5-2", nil, true},
		{"bytes=-0", nil, true},
		{"bytes=0-5,10-15", nil, true},
		{"items=0-5", nil, true},
		{"bytes=", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := parseRangeHeader(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
