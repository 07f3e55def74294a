package letter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatReference(t *testing.T) {
	tests := []struct {
		name     string
		sender   string
		org      string
		category string
		year     int
		seq      int64
		want     string
	}{
		{
			name:     "pads to four digits",
			sender:   "HQ",
			org:      "ACME",
			category: "ADM",
			year:     2026,
			seq:      1,
			want:     "HQ/ACME/ADM/2026/0001",
		},
		{
			name:     "four digits as is",
			sender:   "HQ",
			org:      "ACME",
			category: "FIN",
			year:     2026,
			seq:      9999,
			want:     "HQ/ACME/FIN/2026/9999",
		},
		{
			name:     "wider sequence is not truncated",
			sender:   "HQ",
			org:      "ACME",
			category: "FIN",
			year:     2026,
			seq:      10000,
			want:     "HQ/ACME/FIN/2026/10000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatReference(tt.sender, tt.org, tt.category, tt.year, tt.seq))
		})
	}
}

func TestFormatReference_DistinctSequencesNeverCollide(t *testing.T) {
	seen := make(map[string]int64)
	for seq := int64(1); seq <= 20000; seq++ {
		ref := FormatReference("HQ", "ACME", "ADM", 2026, seq)
		prev, dup := seen[ref]
		assert.False(t, dup, "sequence %d collides with %d as %s", seq, prev, ref)
		seen[ref] = seq
	}
}
