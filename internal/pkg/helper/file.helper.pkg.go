package helper

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	types "pos-terminal/internal/common/type"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// ErrUnsupportedFileType is returned when the sniffed content type is not
// in UploadFile.AllowedTypes.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// ImageTypes are the content types accepted for catalog images.
var ImageTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

// PrepareFileUploadPayload reads an upload into memory and gives it a random
// object name under p.Path. The content type is sniffed from the bytes; the
// type the client declared is ignored.
func PrepareFileUploadPayload(p types.UploadFile) (*types.UploadFilesRes, error) {
	if seeker, ok := p.File.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to rewind upload: %w", err)
		}
	}

	data, err := io.ReadAll(p.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	contentType := http.DetectContentType(data)
	if mediaType, _, _ := strings.Cut(contentType, ";"); len(p.AllowedTypes) > 0 && !lo.Contains(p.AllowedTypes, mediaType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, mediaType)
	}

	folder := p.Path
	if folder == "" {
		folder = "uploads"
	}
	objectName := path.Join(folder, uuid.NewString()+strings.ToLower(filepath.Ext(p.Header.Filename)))

	return &types.UploadFilesRes{
		OriginalFiles: objectName,
		FileName:      p.Header.Filename,
		FileBytes:     data,
		ContentType:   contentType,
	}, nil
}
