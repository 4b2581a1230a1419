package analytics

import (
	"math"
	"sort"

	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/models"
)

// topLimit caps the company and job-title charts.
const topLimit = 10

// absentLabel groups rows with no value for a categorical field.
const absentLabel = "Unknown"

// CountGroup is one (label, value) pair of an aggregation table.
type CountGroup struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary holds the four headline metrics. AvgRating is nil when no row
// carries a rating; renderers must show "no data" rather than zero.
type Summary struct {
	TotalJobs int      `json:"total_jobs"`
	Companies int      `json:"companies"`
	Locations int      `json:"locations"`
	AvgRating *float64 `json:"avg_rating"`
}

// EasyApplyBreakdown counts postings by easy-apply availability.
type EasyApplyBreakdown struct {
	True  int `json:"true"`
	False int `json:"false"`
}

// Dashboard bundles every aggregate the rendering collaborator consumes.
// SalaryDistribution is nil when no filtered row has a parsed salary.
type Dashboard struct {
	Summary            Summary            `json:"summary"`
	JobsByLocation     []CountGroup       `json:"jobs_by_location"`
	TopCompanies       []CountGroup       `json:"top_companies"`
	TopJobTitles       []CountGroup       `json:"top_job_titles"`
	IndustryBreakdown  []CountGroup       `json:"industry_breakdown"`
	SectorBreakdown    []CountGroup       `json:"sector_breakdown"`
	SalaryDistribution []float64          `json:"salary_distribution,omitempty"`
	EasyApply          EasyApplyBreakdown `json:"easy_apply"`
}

// BuildDashboard computes every aggregation over the (already filtered)
// postings. Pure: same input, same output, input never mutated.
func BuildDashboard(postings []models.JobPosting) Dashboard {
	return Dashboard{
		Summary:            Summarize(postings),
		JobsByLocation:     CountByLocation(postings),
		TopCompanies:       TopCompanies(postings),
		TopJobTitles:       TopJobTitles(postings),
		IndustryBreakdown:  IndustryBreakdown(postings),
		SectorBreakdown:    SectorBreakdown(postings),
		SalaryDistribution: SalaryValues(postings),
		EasyApply:          CountEasyApply(postings),
	}
}

func Summarize(postings []models.JobPosting) Summary {
	companies := make(map[string]bool)
	locations := make(map[string]bool)
	ratingSum := 0.0
	rated := 0

	for _, p := range postings {
		// Distinct counts exclude absent values, matching the facet lists.
		if p.CompanyName != "" {
			companies[p.CompanyName] = true
		}
		if p.Location != "" {
			locations[p.Location] = true
		}
		if p.Rating != nil {
			ratingSum += *p.Rating
			rated++
		}
	}

	summary := Summary{
		TotalJobs: len(postings),
		Companies: len(companies),
		Locations: len(locations),
	}
	if rated > 0 {
		avg := roundTo2(ratingSum / float64(rated))
		summary.AvgRating = &avg
	}
	return summary
}

func CountByLocation(postings []models.JobPosting) []CountGroup {
	return countBy(postings, func(p models.JobPosting) string { return p.Location }, false, 0)
}

func TopCompanies(postings []models.JobPosting) []CountGroup {
	return countBy(postings, func(p models.JobPosting) string { return p.CompanyName }, false, topLimit)
}

func TopJobTitles(postings []models.JobPosting) []CountGroup {
	return countBy(postings, func(p models.JobPosting) string { return p.JobTitle }, false, topLimit)
}

func IndustryBreakdown(postings []models.JobPosting) []CountGroup {
	return countBy(postings, func(p models.JobPosting) string { return p.Industry }, true, 0)
}

func SectorBreakdown(postings []models.JobPosting) []CountGroup {
	return countBy(postings, func(p models.JobPosting) string { return p.Sector }, true, 0)
}

// SalaryValues returns the parsed salary means with absent entries
// excluded. Nil means "no salary data", distinct from an empty chart.
func SalaryValues(postings []models.JobPosting) []float64 {
	var values []float64
	for _, p := range postings {
		if p.AvgSalaryK != nil {
			values = append(values, *p.AvgSalaryK)
		}
	}
	return values
}

func CountEasyApply(postings []models.JobPosting) EasyApplyBreakdown {
	var breakdown EasyApplyBreakdown
	for _, p := range postings {
		if p.EasyApply {
			breakdown.True++
		} else {
			breakdown.False++
		}
	}
	return breakdown
}

// countBy groups postings by a field and counts rows per group, ordered by
// descending count with ties broken by label ascending. When includeAbsent
// is set, rows with no value form their own group, except when the whole
// column is absent. limit of 0 keeps all groups.
func countBy(postings []models.JobPosting, key func(models.JobPosting) string, includeAbsent bool, limit int) []CountGroup {
	counts := make(map[string]int)
	hasValue := false
	for _, p := range postings {
		v := key(p)
		if v == "" {
			if !includeAbsent {
				continue
			}
		} else {
			hasValue = true
		}
		counts[v]++
	}
	if includeAbsent && !hasValue {
		return nil
	}

	groups := make([]CountGroup, 0, len(counts))
	for label, count := range counts {
		if label == "" {
			label = absentLabel
		}
		groups = append(groups, CountGroup{Label: label, Count: count})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Label < groups[j].Label
	})

	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

func distinctSorted(postings []models.JobPosting, key func(models.JobPosting) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, p := range postings {
		v := key(p)
		if v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
