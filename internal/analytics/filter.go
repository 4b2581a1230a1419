package analytics

import (
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/models"
)

// Criteria selects postings by exact facet values. Facets AND-combine;
// values within a facet OR-combine. An empty facet applies no restriction.
type Criteria struct {
	Locations      []string
	Industries     []string
	OwnershipTypes []string
}

func (c Criteria) IsEmpty() bool {
	return len(c.Locations) == 0 && len(c.Industries) == 0 && len(c.OwnershipTypes) == 0
}

// Filter returns the postings matching all selected facets. The result is
// always a fresh slice; the canonical dataset is never aliased for mutation.
func Filter(postings []models.JobPosting, criteria Criteria) []models.JobPosting {
	if criteria.IsEmpty() {
		return append([]models.JobPosting(nil), postings...)
	}

	locations := toSet(criteria.Locations)
	industries := toSet(criteria.Industries)
	ownership := toSet(criteria.OwnershipTypes)

	filtered := make([]models.JobPosting, 0, len(postings))
	for _, p := range postings {
		if len(locations) > 0 && !locations[p.Location] {
			continue
		}
		if len(industries) > 0 && !industries[p.Industry] {
			continue
		}
		if len(ownership) > 0 && !ownership[p.TypeOfOwnership] {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// FacetOptions are the selectable values for each filter, sorted ascending
// with absent values dropped.
type FacetOptions struct {
	Locations      []string `json:"locations"`
	Industries     []string `json:"industries"`
	OwnershipTypes []string `json:"ownership_types"`
}

func Facets(postings []models.JobPosting) FacetOptions {
	return FacetOptions{
		Locations:      distinctSorted(postings, func(p models.JobPosting) string { return p.Location }),
		Industries:     distinctSorted(postings, func(p models.JobPosting) string { return p.Industry }),
		OwnershipTypes: distinctSorted(postings, func(p models.JobPosting) string { return p.TypeOfOwnership }),
	}
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
