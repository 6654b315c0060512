package dataset

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/cheggaaa/pb.v1"

	"github.com/buildstock/panelload/pkg/application/dto"
	"github.com/buildstock/panelload/pkg/application/services/nec"
	"github.com/buildstock/panelload/pkg/domain/entities"
	"github.com/buildstock/panelload/pkg/domain/repositories"
	"github.com/buildstock/panelload/pkg/infrastructure/events"
	"github.com/buildstock/panelload/pkg/infrastructure/repositories/csv"
	"github.com/buildstock/panelload/pkg/infrastructure/repositories/memory"
)

// Driver runs the calculator over whole results tables
type Driver struct {
	calc    *nec.Calculator
	config  Config
	log     logrus.FieldLogger
	journal events.EventStore
}

// NewDriver creates a driver. journal may be nil.
func NewDriver(ratings repositories.RatingRepository, config Config, log logrus.FieldLogger, journal events.EventStore) (*Driver, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	policy, err := entities.PolicyFor(config.CodeYear)
	if err != nil {
		return nil, err
	}
	calc, err := nec.NewCalculator(ratings, policy, config.Circuits)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Driver{calc: calc, config: config, log: log, journal: journal}, nil
}

// Result is the outcome of a run. Rows, Baseline and Results are aligned by index.
type Result struct {
	RunID    string
	CodeYear entities.CodeYear
	Methods  []entities.Method
	// Rows are the input rows kept after alignment
	Rows *csv.Table
	// Baseline holds the corrected pre-upgrade records
	Baseline   repositories.BuildingRepository
	Results    []*dto.PanelResult
	HasUpgrade bool
}

type job struct {
	pre  *entities.BuildingRecord
	post *entities.BuildingRecord
	opts nec.UpgradeOptions
}

// Run evaluates every building of baseline, pairing each with its row in
// upgrade when upgrade is non-nil
func (d *Driver) Run(ctx context.Context, baseline, upgrade *csv.Table) (*Result, error) {
	runID := events.NewStreamID()
	log := d.log.WithField("run", runID)

	if err := csv.ValidateColumns(baseline); err != nil {
		return nil, fmt.Errorf("%s table: %w", TableBaseline, err)
	}
	if upgrade != nil {
		if missing := upgrade.MissingColumns([]string{csv.ColumnBuildingID, csv.ColumnCompletedStatus}); len(missing) > 0 {
			return nil, fmt.Errorf("%s table: %w: %v", TableUpgrade, entities.ErrMissingColumn, missing)
		}
	}

	var opts csv.ParseOptions
	peak, err := csv.ResolvePeakColumn(baseline)
	switch {
	case err == nil:
		opts.Peak = &peak
	case d.config.UsesMethod(entities.MaximumDemand):
		return nil, err
	}

	upgradeRows := 0
	if upgrade != nil {
		upgradeRows = upgrade.Len()
	}
	methodNames := make([]string, len(d.config.Methods))
	for i, m := range d.config.Methods {
		methodNames[i] = m.String()
	}
	d.record(runID, events.RunStartedEvent, events.RunStarted{
		BaselineRows: baseline.Len(),
		UpgradeRows:  upgradeRows,
		CodeYear:     d.config.CodeYear,
		Methods:      methodNames,
	})

	pairs, drops, err := align(baseline, upgrade)
	if err != nil {
		return nil, err
	}
	if len(drops) > 0 {
		ids := make([]entities.BuildingID, len(drops))
		for i, dr := range drops {
			ids[i] = dr.id
			d.record(runID, events.RowDroppedEvent, events.RowDropped{BuildingID: dr.id, Table: dr.table})
		}
		log.WithField("building_ids", ids).Warn("buildings missing from one table were dropped")
	}

	rows := csv.NewTable(baseline.Header)
	repo := memory.NewBuildingRepository(len(pairs))
	jobs := make([]job, len(pairs))
	for i, p := range pairs {
		row := baseline.Row(p.baseline)
		pre, err := csv.ParseBuilding(row, opts)
		if err != nil {
			return nil, err
		}
		if err := repo.AddBuilding(pre); err != nil {
			return nil, err
		}
		if err := rows.Append(baseline.Records[p.baseline]); err != nil {
			return nil, err
		}
		jobs[i].pre = pre

		if p.upgrade >= 0 {
			post, err := csv.ParseBuilding(upgradeRow(row, upgrade.Row(p.upgrade)), csv.ParseOptions{})
			if err != nil {
				return nil, fmt.Errorf("%s table: %w", TableUpgrade, err)
			}
			jobs[i].post = post
			jobs[i].opts = d.config.upgradeOptions(post.UpgradeName)
		}
	}

	d.applyCorrections(runID, baseline, jobs)

	incomplete := 0
	for _, j := range jobs {
		if !j.pre.Completed() {
			incomplete++
			d.record(runID, events.RecordIncompleteEvent, events.RecordIncomplete{BuildingID: j.pre.ID, Status: j.pre.Status})
		} else if j.pre.Vacancy == entities.Vacant && d.config.UsesMethod(entities.MaximumDemand) {
			d.record(runID, events.VacancyExcludedEvent, events.VacancyExcluded{BuildingID: j.pre.ID})
		}
		if j.post == nil {
			continue
		}
		if !j.post.UpgradeApplicable {
			d.record(runID, events.UpgradeNotApplicableEvent, events.UpgradeNotApplicable{BuildingID: j.post.ID, Upgrade: j.post.UpgradeName})
		} else if !j.post.Completed() {
			d.record(runID, events.RecordIncompleteEvent, events.RecordIncomplete{BuildingID: j.post.ID, Status: j.post.Status, Upgrade: true})
		}
	}

	results, err := d.evaluate(ctx, jobs)
	if err != nil {
		return nil, err
	}

	d.record(runID, events.RunCompletedEvent, events.RunCompleted{Buildings: len(results), Incomplete: incomplete})

	return &Result{
		RunID:      runID,
		CodeYear:   d.config.CodeYear,
		Methods:    d.config.Methods,
		Rows:       rows,
		Baseline:   repo,
		Results:    results,
		HasUpgrade: upgrade != nil,
	}, nil
}

// applyCorrections runs the dataset-wide corrections on the baseline records
// and carries their outcome over to the post-upgrade records
func (d *Driver) applyCorrections(runID string, baseline *csv.Table, jobs []job) {
	pre := make([]*entities.BuildingRecord, len(jobs))
	var post []*entities.BuildingRecord
	for i, j := range jobs {
		pre[i] = j.pre
		if j.post != nil {
			post = append(post, j.post)
		}
	}

	n := RemoveMultifamilyWellPumps(pre)
	RemoveMultifamilyWellPumps(post)
	d.record(runID, events.CorrectionAppliedEvent, events.CorrectionApplied{Correction: CorrectionWellPump, Buildings: n})

	if !baseline.HasColumn(csv.Existing(csv.FieldHasGarbageDisposal)) {
		n = AssignGarbageDisposals(pre, d.config.GarbageDisposalFraction, d.config.GarbageDisposalMinVintage, d.config.Seed)
		d.record(runID, events.CorrectionAppliedEvent, events.CorrectionApplied{Correction: CorrectionGarbageDisposal, Buildings: n})
	}
	for _, j := range jobs {
		if j.post != nil {
			j.post.HasGarbageDisposal = j.pre.HasGarbageDisposal
		}
	}
}

// evaluate runs the per-building pass. Results are stored by index so their
// order never depends on scheduling.
func (d *Driver) evaluate(ctx context.Context, jobs []job) ([]*dto.PanelResult, error) {
	results := make([]*dto.PanelResult, len(jobs))

	var bar *pb.ProgressBar
	if d.config.Progress != nil {
		bar = pb.New(len(jobs))
		bar.Output = d.config.Progress
		bar.ShowTimeLeft = false
		bar.Start()
		defer bar.Finish()
	}

	run := func(i int) error {
		j := jobs[i]
		r, err := d.calc.Evaluate(j.pre, j.post, d.config.Methods, j.opts)
		if err != nil {
			return err
		}
		results[i] = r
		if bar != nil {
			bar.Increment()
		}
		return nil
	}

	if d.config.Workers <= 1 {
		for i := range jobs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := run(i); err != nil {
				return nil, err
			}
		}
		return results, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	indices := make(chan int, len(jobs))
	for i := range jobs {
		indices <- i
	}
	close(indices)

	var (
		workerWaitGroup sync.WaitGroup
		errOnce         sync.Once
		firstErr        error
	)
	for w := 0; w < d.config.Workers; w++ {
		workerWaitGroup.Add(1)
		go func() {
			defer workerWaitGroup.Done()
			for i := range indices {
				if ctx.Err() != nil {
					return
				}
				if err := run(i); err != nil {
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					return
				}
			}
		}()
	}
	workerWaitGroup.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (d *Driver) record(runID, eventType string, data interface{}) {
	if d.journal == nil {
		return
	}
	if err := d.journal.AppendEvent(runID, events.NewEvent(eventType, runID, data)); err != nil {
		d.log.WithError(err).Warn("failed to record run event")
	}
}
