package internal

import (
	"fmt"
	"sort"
	"time"

	"github.com/chrisconley/segmint/specs"
)

// Analyze implements specs.Analyze.
// Runs the full pipeline: extract → segment → label → recommend. Each stage
// consumes the previous stage's spec output and never mutates it, so the
// whole run is a pure function of the transactions and the config.
func Analyze(transactions []specs.TransactionSpec, config specs.AnalysisConfigSpec) (specs.AnalysisReportSpec, error) {
	table, err := Extract(transactions, config.Extraction)
	if err != nil {
		return specs.AnalysisReportSpec{}, fmt.Errorf("extracting features: %w", err)
	}

	assignment, err := Segment(table, config.Segmentation)
	if err != nil {
		return specs.AnalysisReportSpec{}, fmt.Errorf("segmenting customers: %w", err)
	}

	profiles, err := Label(assignment, table)
	if err != nil {
		return specs.AnalysisReportSpec{}, fmt.Errorf("labeling segments: %w", err)
	}

	labelByCluster := make(map[int]string, len(profiles))
	for i, profile := range profiles {
		recommendation, err := Recommend(profile)
		if err != nil {
			return specs.AnalysisReportSpec{}, fmt.Errorf("recommending for cluster %d: %w", profile.Cluster, err)
		}
		profiles[i].Recommendation = recommendation
		labelByCluster[profile.Cluster] = profile.Label
	}

	customers := make([]specs.CustomerSegmentSpec, 0, len(assignment.Assignments))
	for customerID, cluster := range assignment.Assignments {
		customers = append(customers, specs.CustomerSegmentSpec{
			CustomerID: customerID,
			Cluster:    cluster,
			Label:      labelByCluster[cluster],
		})
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].CustomerID < customers[j].CustomerID
	})

	return specs.AnalysisReportSpec{
		GeneratedAt:   time.Now().UTC(),
		ReferenceDate: table.ReferenceDate,
		CustomerCount: len(table.Rows),
		SkippedRows:   table.SkippedRows,
		Seed:          assignment.Seed,
		Profiles:      profiles,
		Customers:     customers,
	}, nil
}
