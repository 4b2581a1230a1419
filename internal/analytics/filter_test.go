package analytics

import (
	"reflect"
	"testing"

	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/models"
)

func samplePostings() []models.JobPosting {
	salary60 := 60.0
	salary90 := 90.0
	rating40 := 4.0

	return []models.JobPosting{
		{
			JobTitle:        "Business Analyst",
			CompanyName:     "A",
			Location:        "NY",
			Industry:        "Tech",
			TypeOfOwnership: "Private",
			AvgSalaryK:      &salary60,
			Rating:          &rating40,
		},
		{
			JobTitle:        "Data Analyst",
			CompanyName:     "B",
			Location:        "NY",
			Industry:        "Finance",
			TypeOfOwnership: "Public",
			AvgSalaryK:      &salary90,
			EasyApply:       true,
		},
		{
			JobTitle:        "Business Analyst",
			CompanyName:     "A",
			Location:        "LA",
			Industry:        "Tech",
			TypeOfOwnership: "Private",
			Rating:          &rating40,
		},
	}
}

func TestFilterByLocation(t *testing.T) {
	postings := samplePostings()

	got := Filter(postings, Criteria{Locations: []string{"NY"}})
	if len(got) != 2 {
		t.Fatalf("expected 2 NY postings, got %d", len(got))
	}
	for _, p := range got {
		if p.Location != "NY" {
			t.Errorf("filtered posting has location %q", p.Location)
		}
	}
}

func TestFilterFacetsCombineWithAnd(t *testing.T) {
	postings := samplePostings()

	got := Filter(postings, Criteria{
		Locations:  []string{"NY"},
		Industries: []string{"Tech"},
	})
	if len(got) != 1 {
		t.Fatalf("expected 1 posting for NY+Tech, got %d", len(got))
	}
	if got[0].CompanyName != "A" {
		t.Errorf("wrong posting survived: %q", got[0].CompanyName)
	}

	got = Filter(postings, Criteria{OwnershipTypes: []string{"Public"}})
	if len(got) != 1 || got[0].CompanyName != "B" {
		t.Errorf("ownership filter failed: %+v", got)
	}
}

func TestFilterEmptyCriteriaReturnsCopy(t *testing.T) {
	postings := samplePostings()

	if !(Criteria{}).IsEmpty() {
		t.Error("zero-value criteria should be empty")
	}
	if (Criteria{Locations: []string{"NY"}}).IsEmpty() {
		t.Error("criteria with a selected facet should not be empty")
	}

	got := Filter(postings, Criteria{})
	if !reflect.DeepEqual(got, postings) {
		t.Error("empty criteria should return the full table")
	}

	// Filtering twice is idempotent.
	again := Filter(got, Criteria{})
	if !reflect.DeepEqual(again, postings) {
		t.Error("repeated empty filtering should be identical to the canonical table")
	}

	// The result is a new slice, not an alias.
	got[0].Location = "mutated"
	if postings[0].Location == "mutated" {
		t.Error("filter result aliases the canonical table")
	}
}

func TestFilterExcludingAllRows(t *testing.T) {
	got := Filter(samplePostings(), Criteria{Locations: []string{"Nowhere"}})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(got))
	}
}

func TestFacets(t *testing.T) {
	postings := samplePostings()
	postings = append(postings, models.JobPosting{Location: "NY"}) // absent industry/ownership

	facets := Facets(postings)
	if !reflect.DeepEqual(facets.Locations, []string{"LA", "NY"}) {
		t.Errorf("locations = %v", facets.Locations)
	}
	if !reflect.DeepEqual(facets.Industries, []string{"Finance", "Tech"}) {
		t.Errorf("industries = %v", facets.Industries)
	}
	if !reflect.DeepEqual(facets.OwnershipTypes, []string{"Private", "Public"}) {
		t.Errorf("ownership types = %v", facets.OwnershipTypes)
	}
}
