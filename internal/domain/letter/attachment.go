package letter

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/papertrails/papertrails/internal/types"
)

const unknownFileType = "unknown"

// NewAttachment builds attachment metadata. The title falls back to the file
// base name and the type is derived from the extension.
func NewAttachment(letterID, title, fileName string, size int64) *Attachment {
	base := filepath.Base(fileName)
	if strings.TrimSpace(title) == "" {
		title = base
	}

	fileType, mimeType := detectType(base)
	return &Attachment{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LETTER_ATTACHMENT),
		LetterID:  letterID,
		Title:     title,
		FileName:  base,
		FileSize:  size,
		FileType:  fileType,
		MimeType:  mimeType,
		CreatedAt: time.Now().UTC(),
	}
}

func detectType(fileName string) (string, string) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	if ext == "" {
		return unknownFileType, ""
	}

	kind := filetype.GetType(ext)
	if kind == filetype.Unknown {
		return ext, ""
	}
	return ext, kind.MIME.Value
}

// HumanSize renders the file size as B, KB, MB or GB with one decimal
func (a *Attachment) HumanSize() string {
	if a.FileSize <= 0 {
		return "0 B"
	}

	size := float64(a.FileSize)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}
