package karma

// Karma deltas applied by the server when community actions succeed.
const (
	AwardItemSubmitted = 10
	AwardItemVerified  = 25 // to the contributor, once the item becomes verified
	AwardVerification  = 1  // to the voter
	AwardEditApproved  = 15
)

// Reasons recorded in the karma ledger.
const (
	ReasonItemSubmitted = "item_submitted"
	ReasonItemVerified  = "item_verified"
	ReasonVerification  = "verification_cast"
	ReasonEditApproved  = "edit_approved"
)
