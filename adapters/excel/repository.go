package excel

import (
	"context"
	"sort"

	"scholarmatch/domain/core"
	"scholarmatch/domain/criteria"
	"scholarmatch/domain/model"
)

// Repository serves a loaded workbook corpus through the same ports the
// database adapter implements, so the trainer does not care where the
// decisions came from. The corpus is immutable after load; list calls return
// copies to honor the snapshot contract.
type Repository struct {
	byOffering map[core.OfferingID][]model.DecisionRecord
	criteria   map[core.OfferingID]*criteria.Criteria
}

// NewRepository indexes a parsed corpus.
func NewRepository(corpus *Corpus) *Repository {
	byOffering := make(map[core.OfferingID][]model.DecisionRecord)
	for _, record := range corpus.Records {
		byOffering[record.OfferingID] = append(byOffering[record.OfferingID], record)
	}
	return &Repository{byOffering: byOffering, criteria: corpus.Criteria}
}

// ListDecisions returns the offering's records.
func (r *Repository) ListDecisions(_ context.Context, offeringID core.OfferingID) ([]model.DecisionRecord, error) {
	records := r.byOffering[offeringID]
	out := make([]model.DecisionRecord, len(records))
	copy(out, records)
	return out, nil
}

// ListAllDecisions returns the whole corpus in offering order.
func (r *Repository) ListAllDecisions(_ context.Context) ([]model.DecisionRecord, error) {
	offerings := r.offeringIDs()
	var out []model.DecisionRecord
	for _, offeringID := range offerings {
		out = append(out, r.byOffering[offeringID]...)
	}
	return out, nil
}

// ListOfferings enumerates offerings present in the workbook.
func (r *Repository) ListOfferings(_ context.Context) ([]core.OfferingID, error) {
	return r.offeringIDs(), nil
}

// GetCriteria returns the offering's rule set from the criteria sheet, or a
// wildcard rule set when the workbook carries none.
func (r *Repository) GetCriteria(_ context.Context, offeringID core.OfferingID) (*criteria.Criteria, error) {
	if crit, ok := r.criteria[offeringID]; ok {
		return crit, nil
	}
	return &criteria.Criteria{OfferingID: offeringID}, nil
}

func (r *Repository) offeringIDs() []core.OfferingID {
	out := make([]core.OfferingID, 0, len(r.byOffering))
	for offeringID := range r.byOffering {
		out = append(out, offeringID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
