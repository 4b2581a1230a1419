package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/errors"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/models"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/telemetry"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("job-listings/loader")

// digitRunPattern matches maximal runs of decimal digits. Salary parsing
// deliberately ignores signs, decimal points and currency symbols.
var digitRunPattern = regexp.MustCompile(`\d+`)

var requiredColumns = []string{
	"location",
	"company_name",
	"job_title",
	"salary_estimate",
	"rating",
	"industry",
	"sector",
	"type_of_ownership",
}

var rowNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

type Loader struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the CSV at path and produces the canonical dataset. The
// returned dataset is never mutated afterwards; callers filter by copying.
func (l *Loader) Load(ctx context.Context, path string) (*models.Dataset, error) {
	_, span := tracer.Start(ctx, "Loader.Load")
	defer span.End()
	span.SetAttributes(telemetry.String("dataset.path", path))

	file, err := os.Open(path)
	if err != nil {
		span.RecordError(err)
		return nil, errors.DataLoad("opening dataset", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			l.logger.Warn("failed to close dataset file", zap.Error(cerr))
		}
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		span.RecordError(err)
		return nil, errors.DataLoad("reading dataset header", err)
	}

	columns := normalizeHeaders(headers)
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, errors.DataLoad(fmt.Sprintf("dataset missing required column %q", name), nil)
		}
	}

	var postings []models.JobPosting
	rowNum := 0
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			// A single bad row must not abort the load.
			l.logger.Warn("skipping malformed row",
				zap.Int("row", rowNum),
				zap.Error(err))
			skipped++
			continue
		}
		postings = append(postings, buildPosting(path, rowNum, columns, row))
	}

	span.SetAttributes(
		telemetry.Int("dataset.rows", len(postings)),
		telemetry.Int("dataset.rows_skipped", skipped),
	)
	l.logger.Info("loaded dataset",
		zap.String("path", path),
		zap.Int("rows", len(postings)),
		zap.Int("skipped", skipped))

	return &models.Dataset{
		SourcePath: path,
		LoadedAt:   time.Now(),
		Postings:   postings,
	}, nil
}

// normalizeHeaders maps trimmed, lowercased column names to their index.
// First occurrence wins on duplicates.
func normalizeHeaders(headers []string) map[string]int {
	columns := make(map[string]int, len(headers))
	for i, h := range headers {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, exists := columns[name]; !exists {
			columns[name] = i
		}
	}
	return columns
}

func buildPosting(path string, rowNum int, columns map[string]int, row []string) models.JobPosting {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	posting := models.JobPosting{
		ID:              rowID(path, rowNum),
		JobTitle:        field("job_title"),
		CompanyName:     CleanCompanyName(field("company_name")),
		Location:        field("location"),
		Industry:        field("industry"),
		Sector:          field("sector"),
		TypeOfOwnership: field("type_of_ownership"),
		EasyApply:       parseEasyApply(field("easy_apply")),
		SalaryEstimate:  field("salary_estimate"),
	}

	if founded, ok := parseFounded(field("founded")); ok {
		posting.Founded = &founded
	}
	if avg, ok := ParseSalary(posting.SalaryEstimate); ok {
		posting.AvgSalaryK = &avg
	}
	if rating, err := strconv.ParseFloat(field("rating"), 64); err == nil {
		posting.Rating = &rating
	}

	return posting
}

// rowID derives a stable UUID from the source identity so the rendering
// collaborator gets the same row keys on every reload.
func rowID(path string, rowNum int) string {
	return uuid.NewSHA1(rowNamespace, []byte(fmt.Sprintf("%s:%d", path, rowNum))).String()
}

// CleanCompanyName truncates at the first line break. The source format
// embeds the rating after a newline ("Acme Corp\n3.5").
func CleanCompanyName(name string) string {
	if i := strings.IndexByte(name, '\n'); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

// ParseSalary extracts every digit run from a salary estimate and returns
// their arithmetic mean: "$40K-$60K (Glassdoor est.)" → 50. The second
// return is false when the input is empty or contains no digits.
func ParseSalary(estimate string) (float64, bool) {
	if estimate == "" {
		return 0, false
	}
	runs := digitRunPattern.FindAllString(estimate, -1)
	if len(runs) == 0 {
		return 0, false
	}
	sum := 0
	count := 0
	for _, run := range runs {
		n, err := strconv.Atoi(run)
		if err != nil {
			// Digit run too long for int; drop it like a malformed value.
			continue
		}
		sum += n
		count++
	}
	if count == 0 {
		return 0, false
	}
	return float64(sum) / float64(count), true
}

// parseFounded normalizes the founded year. The source uses -1 for unknown.
func parseFounded(value string) (int, bool) {
	year, err := strconv.Atoi(value)
	if err != nil || year == -1 {
		return 0, false
	}
	return year, true
}

// parseEasyApply coerces easy_apply to a boolean. The source uses -1 for
// "not easy apply"; anything unparsable also means false.
func parseEasyApply(value string) bool {
	if value == "" || value == "-1" {
		return false
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return b
}
