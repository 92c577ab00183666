package types

import "mime/multipart"

// UploadFile is a multipart file on its way to storage. An empty
// AllowedTypes accepts any content.
type UploadFile struct {
	File         multipart.File
	Header       *multipart.FileHeader
	Path         string
	AllowedTypes []string
}

// UploadFilesRes is an upload read fully into memory.
type UploadFilesRes struct {
	OriginalFiles string
	FileName      string
	FileBytes     []byte
	ContentType   string
}
