package models

// ClassificationResult is the policy-validated judgment produced for one
// email. It always satisfies: Category is a taxonomy member, DraftReply is
// non-empty, and RequiresHumanReview is true whenever Confidence is below
// the review threshold.
type ClassificationResult struct {
	Category            Category `json:"classification"`
	Confidence          float64  `json:"confidence"`
	DraftReply          string   `json:"draft_reply"`
	RequiresHumanReview bool     `json:"requires_human_review"`
}
