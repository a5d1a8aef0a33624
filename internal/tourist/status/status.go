// Package status derives a tourist's aggregate verification state from the
// per-document statuses. Derivation is a pure projection: same inputs, same
// output, nothing cached.
package status

import "tourshield/internal/tourist/models"

// DeriveVerification aggregates the two document statuses, in priority order:
// both verified wins, any submitted document means the record is under
// review, anything else is pending. The function is total over the 3x3 input
// space.
func DeriveVerification(passport, ticket models.DocumentStatus) models.VerificationState {
	if passport == models.DocumentVerified && ticket == models.DocumentVerified {
		return models.VerificationVerified
	}
	if passport == models.DocumentSubmitted || ticket == models.DocumentSubmitted {
		return models.VerificationUnderReview
	}
	return models.VerificationPending
}

// DeriveForRecord is a convenience over DeriveVerification for a full record.
func DeriveForRecord(r *models.TouristRecord) models.VerificationState {
	return DeriveVerification(r.PassportStatus, r.FlightTicketStatus)
}
