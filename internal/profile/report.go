package profile

// Report is everything the form shows about a profile without submitting it.
type Report struct {
	Profile    UserProfile      `json:"profile"`
	Metrics    DerivedMetrics   `json:"metrics"`
	Validation ValidationResult `json:"validation"`
	Advisories []Advisory       `json:"advisories,omitempty"`
}

// Check recomputes metrics, submission validation and advisories for p.
func Check(p UserProfile) Report {
	return Report{
		Profile:    p,
		Metrics:    ComputeMetrics(p),
		Validation: ValidateForSubmission(p),
		Advisories: Advisories(p),
	}
}
