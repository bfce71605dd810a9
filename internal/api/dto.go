package api

import (
	"path"
	"strings"
	"time"

	"github.com/harborview/gateway/internal/store"
)

// bucketDTO is the JSON shape for a bucket.
type bucketDTO struct {
	Name         string    `json:"name"`
	CreationDate time.Time `json:"creationDate"`
}

// objectDTO is the JSON shape for a stored object. Display fields are
// derived here so clients never re-parse keys: name is the final path
// segment, isFolder mirrors a trailing delimiter, extension comes from name.
type objectDTO struct {
	Key          string    `json:"key"`
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	ETag         string    `json:"etag"`
	StorageClass string    `json:"storageClass,omitempty"`
	IsFolder     bool      `json:"isFolder"`
	Extension    string    `json:"extension,omitempty"`
}

func toObjectDTO(obj store.ObjectInfo) objectDTO {
	name := objectName(obj.Key)
	return objectDTO{
		Key:          obj.Key,
		Name:         name,
		Size:         obj.Size,
		LastModified: obj.LastModified,
		ETag:         obj.ETag,
		StorageClass: obj.StorageClass,
		IsFolder:     strings.HasSuffix(obj.Key, "/"),
		Extension:    strings.TrimPrefix(path.Ext(name), "."),
	}
}

// objectName returns the final path segment of a key. Folder keys (trailing
// delimiter) yield the segment before the delimiter.
func objectName(key string) string {
	trimmed := strings.TrimSuffix(key, "/")
	if trimmed == "" {
		return key
	}
	return path.Base(trimmed)
}

// paginationDTO is the pagination block on listing and search responses.
type paginationDTO struct {
	IsTruncated           bool   `json:"isTruncated"`
	KeyCount              int    `json:"keyCount,omitempty"`
	NextContinuationToken string `json:"nextContinuationToken,omitempty"`
}
