package utils

import "time"

// LateFee calculates the fee owed when a rental due at due is returned at
// returned, charging feePerDay for every full day past the due date. Whole
// days only; early and on-time returns owe nothing, as does a return within
// the first 24 hours past due.
func LateFee(due, returned time.Time, feePerDay int64) int64 {
	if feePerDay <= 0 || !returned.After(due) {
		return 0
	}
	daysLate := int64(returned.Sub(due) / (24 * time.Hour))
	return daysLate * feePerDay
}
