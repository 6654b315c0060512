package dataset

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/buildstock/panelload/pkg/domain/entities"
	"github.com/buildstock/panelload/pkg/infrastructure/repositories/csv"
)

// Table names used in drop diagnostics
const (
	TableBaseline = "baseline"
	TableUpgrade  = "upgrade"
)

// rowIDs indexes a table's rows by building_id
func rowIDs(t *csv.Table) (map[entities.BuildingID]int, []entities.BuildingID, error) {
	col, ok := t.Column(csv.ColumnBuildingID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", entities.ErrMissingColumn, csv.ColumnBuildingID)
	}
	index := make(map[entities.BuildingID]int, t.Len())
	ids := make([]entities.BuildingID, t.Len())
	for i, record := range t.Records {
		id, err := cast.ToInt64E(record[col])
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %s: %w", i+2, csv.ColumnBuildingID, err)
		}
		bid := entities.BuildingID(id)
		if _, dup := index[bid]; dup {
			return nil, nil, fmt.Errorf("duplicate building_id: %d", id)
		}
		index[bid] = i
		ids[i] = bid
	}
	return index, ids, nil
}

// pair is one aligned baseline row and its upgrade row (-1 when there is no upgrade)
type pair struct {
	id       entities.BuildingID
	baseline int
	upgrade  int
}

type dropped struct {
	id    entities.BuildingID
	table string
}

// align pairs baseline and upgrade rows on building_id in baseline order.
// Buildings present in only one table are dropped.
func align(baseline, upgrade *csv.Table) ([]pair, []dropped, error) {
	_, baseIDs, err := rowIDs(baseline)
	if err != nil {
		return nil, nil, fmt.Errorf("%s table: %w", TableBaseline, err)
	}
	if upgrade == nil {
		pairs := make([]pair, len(baseIDs))
		for i, id := range baseIDs {
			pairs[i] = pair{id: id, baseline: i, upgrade: -1}
		}
		return pairs, nil, nil
	}

	upIndex, upIDs, err := rowIDs(upgrade)
	if err != nil {
		return nil, nil, fmt.Errorf("%s table: %w", TableUpgrade, err)
	}

	var pairs []pair
	var drops []dropped
	inBaseline := make(map[entities.BuildingID]bool, len(baseIDs))
	for i, id := range baseIDs {
		inBaseline[id] = true
		j, ok := upIndex[id]
		if !ok {
			drops = append(drops, dropped{id: id, table: TableBaseline})
			continue
		}
		pairs = append(pairs, pair{id: id, baseline: i, upgrade: j})
	}
	for _, id := range upIDs {
		if !inBaseline[id] {
			drops = append(drops, dropped{id: id, table: TableUpgrade})
		}
	}
	return pairs, drops, nil
}

// upgradeRow builds the post-upgrade view of a building: the baseline row
// overlaid with the upgrade row, then its upgrade.<field> overrides
func upgradeRow(baseline, upgrade csv.Row) csv.Row {
	return csv.ApplyUpgradeOverrides(baseline.Overlay(upgrade))
}
