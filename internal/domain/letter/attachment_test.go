package letter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAttachment(t *testing.T) {
	a := NewAttachment("let_1", "", "/uploads/2026/contract.PDF", 2048)

	assert.Equal(t, "contract.PDF", a.FileName)
	assert.Equal(t, "contract.PDF", a.Title)
	assert.Equal(t, "pdf", a.FileType)
	assert.Equal(t, "application/pdf", a.MimeType)
	assert.Equal(t, "let_1", a.LetterID)
	assert.NotEmpty(t, a.ID)

	titled := NewAttachment("let_1", "Signed copy", "scan.png", 10)
	assert.Equal(t, "Signed copy", titled.Title)
	assert.Equal(t, "image/png", titled.MimeType)

	bare := NewAttachment("let_1", "", "README", 10)
	assert.Equal(t, "unknown", bare.FileType)
	assert.Empty(t, bare.MimeType)

	odd := NewAttachment("let_1", "", "notes.qqq", 10)
	assert.Equal(t, "qqq", odd.FileType)
	assert.Empty(t, odd.MimeType)
}

func TestAttachment_HumanSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{512, "512.0 B"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
		{2 * 1024 * 1024 * 1024 * 1024, "2.0 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			a := &Attachment{FileSize: tt.size}
			assert.Equal(t, tt.want, a.HumanSize())
		})
	}
}
