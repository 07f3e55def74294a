package agreement

import (
	"time"

	"github.com/papertrails/papertrails/internal/types"
)

// EvaluateStatus is Expired only once the expiry day has passed; the expiry
// day itself is still Ongoing.
func EvaluateStatus(expiry, today time.Time) types.AgreementStatus {
	if types.TruncateToDay(expiry).Before(types.TruncateToDay(today)) {
		return types.AgreementStatusExpired
	}
	return types.AgreementStatusOngoing
}
