package reconcile

import "time"

// MergePolicy describes how one Aggregate field folds in values from
// contributing records.
type MergePolicy string

const (
	// MergeMax keeps the largest non-null value seen so far. Fields under
	// this policy are monotonically non-decreasing within a pass.
	MergeMax MergePolicy = "max"
	// MergeFirstNonNull sets the field once, from the first record that
	// carries a value, and never overwrites it within a pass.
	MergeFirstNonNull MergePolicy = "first-non-null"
	// MergeOr ORs boolean flags: true once any contributing record is true.
	MergeOr MergePolicy = "or"
)

// FieldPolicies is the single source of truth for how Aggregate fields are
// merged. The fold functions below implement exactly this table; keeping it
// declarative here stops the policy from being re-derived differently at
// each call site.
var FieldPolicies = map[string]MergePolicy{
	"example_url":      MergeFirstNonNull,
	"domain_rating":    MergeMax,
	"domain_traffic":   MergeMax,
	"nofollow":         MergeOr,
	"contacted_on":     MergeFirstNonNull,
	"contact_method":   MergeFirstNonNull,
	"contact_email":    MergeFirstNonNull,
	"contact_form_url": MergeFirstNonNull,
	"remarks":          MergeFirstNonNull,
}

// mergeMaxInt applies MergeMax: update only when the candidate is non-null
// and strictly greater than the current value.
func mergeMaxInt(current **int, candidate *int) {
	if candidate == nil {
		return
	}
	if *current == nil || *candidate > **current {
		v := *candidate
		*current = &v
	}
}

// mergeFirstString applies MergeFirstNonNull for string fields.
func mergeFirstString(current **string, candidate *string) {
	if *current != nil || candidate == nil {
		return
	}
	v := *candidate
	*current = &v
}

// mergeFirstTime applies MergeFirstNonNull for timestamp fields.
func mergeFirstTime(current **time.Time, candidate *time.Time) {
	if *current != nil || candidate == nil {
		return
	}
	v := *candidate
	*current = &v
}
