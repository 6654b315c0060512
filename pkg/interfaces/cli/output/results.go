package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/buildstock/panelload/pkg/application/dto"
	"github.com/buildstock/panelload/pkg/application/services/dataset"
	"github.com/buildstock/panelload/pkg/domain/entities"
	"github.com/buildstock/panelload/pkg/infrastructure/repositories/csv"
)

// ColumnReplacedLoads lists the items whose existing equipment an upgrade removed
const ColumnReplacedLoads = "replaced_loads"

// Stage is the pre- or post-upgrade side of a result
type Stage string

const (
	PreUpgrade  Stage = "pre_upgrade"
	PostUpgrade Stage = "post_upgrade"
)

// TotalColumn names a method's total load column, e.g. load_total_pre_upgrade_VA_220_83
func TotalColumn(stage Stage, m entities.Method) string {
	return fmt.Sprintf("load_total_%s_VA_%s", stage, m)
}

// AmperageColumn names a method's amperage column, e.g. amp_total_pre_upgrade_A_220_83
func AmperageColumn(stage Stage, m entities.Method) string {
	return fmt.Sprintf("amp_total_%s_A_%s", stage, m)
}

// ItemColumn names an exploded load item column, e.g. load_lighting_pre_upgrade_VA_220_83
func ItemColumn(name entities.LoadName, stage Stage, m entities.Method) string {
	return fmt.Sprintf("%s_%s_VA_%s", name, stage, m)
}

// FormatFloat writes v in its shortest exact decimal form; NaN is an empty cell
func FormatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return decimal.NewFromFloat(v).String()
}

// ResultOptions selects the result table layout
type ResultOptions struct {
	// Explode adds every load item as its own column
	Explode bool
	// AsMap drops the input columns, keeping building_id and the results
	AsMap bool
}

// ResultTable joins a run's input rows with its result columns
func ResultTable(res *dataset.Result, opts ResultOptions) (*csv.Table, error) {
	if res.Rows.Len() != len(res.Results) {
		return nil, fmt.Errorf("%d input rows but %d results", res.Rows.Len(), len(res.Results))
	}
	policy, err := entities.PolicyFor(res.CodeYear)
	if err != nil {
		return nil, err
	}
	stages := []Stage{PreUpgrade}
	if res.HasUpgrade {
		stages = append(stages, PostUpgrade)
	}

	var header []string
	idCol := -1
	if opts.AsMap {
		header = append(header, csv.ColumnBuildingID)
	} else {
		header = append(header, res.Rows.Header...)
		if i, ok := res.Rows.Column(csv.ColumnBuildingID); ok {
			idCol = i
		}
	}
	for _, m := range res.Methods {
		for _, s := range stages {
			header = append(header, TotalColumn(s, m), AmperageColumn(s, m))
		}
	}
	if res.HasUpgrade {
		header = append(header, ColumnReplacedLoads)
	}
	names := policy.LoadNames()
	if opts.Explode {
		for _, m := range res.Methods {
			for _, s := range stages {
				for _, n := range names {
					header = append(header, ItemColumn(n, s, m))
				}
			}
		}
	}

	table := csv.NewTable(header)
	for i, r := range res.Results {
		record := make([]string, 0, len(header))
		if opts.AsMap {
			record = append(record, fmt.Sprint(int64(r.BuildingID)))
		} else {
			record = append(record, res.Rows.Records[i]...)
			if idCol >= 0 {
				record[idCol] = fmt.Sprint(int64(r.BuildingID))
			}
		}

		for _, m := range res.Methods {
			mr := r.Method(m)
			if mr == nil {
				return nil, fmt.Errorf("building %d: no %s result", r.BuildingID, m)
			}
			for _, s := range stages {
				va := totalVA(mr, s)
				record = append(record, FormatFloat(va), FormatFloat(entities.Amperage(va)))
			}
		}
		if res.HasUpgrade {
			record = append(record, joinLoads(r.ReplacedLoads))
		}
		if opts.Explode {
			for _, m := range res.Methods {
				mr := r.Method(m)
				for _, s := range stages {
					v := loads(mr, s)
					for _, n := range names {
						cell := ""
						if v != nil && v.Has(n) {
							cell = FormatFloat(v.Get(n))
						}
						record = append(record, cell)
					}
				}
			}
		}

		if err := table.Append(record); err != nil {
			return nil, fmt.Errorf("building %d: %w", r.BuildingID, err)
		}
	}
	return table, nil
}

func totalVA(mr *dto.MethodResult, s Stage) float64 {
	if s == PostUpgrade {
		return mr.PostUpgradeVA
	}
	return mr.PreUpgradeVA
}

func loads(mr *dto.MethodResult, s Stage) *entities.LoadVector {
	if s == PostUpgrade {
		return mr.PostUpgradeLoads
	}
	return mr.PreUpgradeLoads
}

func joinLoads(names []entities.LoadName) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ";")
}
