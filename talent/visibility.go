package talent

import "github.com/ncobase/talentsearch/data/search"

// Indexed talent fields.
const (
	FieldID               = "ids"
	FieldAccepted         = "accepted"
	FieldBatchStartAt     = "batch_start_at"
	FieldBatchEndAt       = "batch_end_at"
	FieldUpdatedAt        = "updated_at"
	FieldCompanyIDs       = "company_ids"
	FieldBlockedCompanies = "blocked_companies"
)

// EpochFormat tells the engine range values are UNIX seconds.
const EpochFormat = "epoch_second"

// Visibility returns the platform visibility rule at epoch: accepted
// talents whose batch window contains epoch. Presented talents are
// visible regardless of the rule.
func Visibility(epoch int64, presented []int64) search.Filter {
	visible := search.And(
		search.Term(FieldAccepted, true),
		search.RangeLte(FieldBatchStartAt, epoch, EpochFormat),
		search.RangeGte(FieldBatchEndAt, epoch, EpochFormat),
	)

	ids, ok := search.Terms(FieldID, presented)
	if !ok {
		return visible
	}
	return search.Or(visible, ids)
}
