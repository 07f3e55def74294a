package letter

import (
	"fmt"
)

// FormatReference renders SENDER/RECIPIENT_ORG/CATEGORY/YEAR/NNNN.
// The sequence is padded to four digits and never truncated.
func FormatReference(senderCode, recipientOrgCode, categoryCode string, year int, sequence int64) string {
	return fmt.Sprintf("%s/%s/%s/%d/%04d", senderCode, recipientOrgCode, categoryCode, year, sequence)
}
