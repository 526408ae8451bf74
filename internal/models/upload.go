package models

import "strings"

// Upload is one request-scoped multipart payload. The bytes are held in
// memory for the lifetime of the owning operation; every on-disk copy is a
// temporary artifact owned by whoever wrote it.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}

func (u *Upload) IsEmpty() bool {
	return u == nil || len(u.Data) == 0
}

func (u *Upload) IsVideo() bool {
	return strings.HasPrefix(u.ContentType, "video")
}
