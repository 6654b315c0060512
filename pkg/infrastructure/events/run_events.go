package events

import (
	"github.com/sirupsen/logrus"

	"github.com/buildstock/panelload/pkg/domain/entities"
)

const (
	RunStartedEvent   = "run.started"
	RunCompletedEvent = "run.completed"

	RowDroppedEvent           = "row.dropped"
	RecordIncompleteEvent     = "record.incomplete"
	VacancyExcludedEvent      = "record.vacancy_excluded"
	CorrectionAppliedEvent    = "correction.applied"
	UpgradeNotApplicableEvent = "upgrade.not_applicable"
)

// AllRunEvents lists every event type a run emits
var AllRunEvents = []string{
	RunStartedEvent,
	RunCompletedEvent,
	RowDroppedEvent,
	RecordIncompleteEvent,
	VacancyExcludedEvent,
	CorrectionAppliedEvent,
	UpgradeNotApplicableEvent,
}

type RunStarted struct {
	BaselineRows int               `json:"baseline_rows"`
	UpgradeRows  int               `json:"upgrade_rows"`
	CodeYear     entities.CodeYear `json:"code_year"`
	Methods      []string          `json:"methods"`
}

type RunCompleted struct {
	Buildings  int `json:"buildings"`
	Incomplete int `json:"incomplete"`
}

// RowDropped records a building present in only one of the aligned tables
type RowDropped struct {
	BuildingID entities.BuildingID `json:"building_id"`
	Table      string              `json:"table"`
}

type RecordIncomplete struct {
	BuildingID entities.BuildingID       `json:"building_id"`
	Status     entities.CompletionStatus `json:"status"`
	Upgrade    bool                      `json:"upgrade"`
}

type VacancyExcluded struct {
	BuildingID entities.BuildingID `json:"building_id"`
}

// CorrectionApplied records a dataset-level correction and how many
// buildings it touched
type CorrectionApplied struct {
	Correction string `json:"correction"`
	Buildings  int    `json:"buildings"`
}

type UpgradeNotApplicable struct {
	BuildingID entities.BuildingID `json:"building_id"`
	Upgrade    string              `json:"upgrade"`
}

// LogHandler writes journal events to a logger. Per-building events are
// logged at debug level, run-level events at info.
type LogHandler struct {
	log logrus.FieldLogger
}

func NewLogHandler(log logrus.FieldLogger) *LogHandler {
	return &LogHandler{log: log}
}

func (h *LogHandler) CanHandle(eventType string) bool {
	for _, t := range AllRunEvents {
		if t == eventType {
			return true
		}
	}
	return false
}

func (h *LogHandler) Handle(event Event) error {
	entry := h.log.WithFields(logrus.Fields{
		"run":   event.StreamID(),
		"event": event.Type(),
	})

	switch data := event.Data().(type) {
	case RunStarted:
		entry.WithFields(logrus.Fields{
			"baseline_rows": data.BaselineRows,
			"upgrade_rows":  data.UpgradeRows,
			"code_year":     data.CodeYear.String(),
			"methods":       data.Methods,
		}).Info("run started")
	case RunCompleted:
		entry.WithFields(logrus.Fields{
			"buildings":  data.Buildings,
			"incomplete": data.Incomplete,
		}).Info("run completed")
	case RowDropped:
		entry.WithFields(logrus.Fields{
			"building_id": data.BuildingID,
			"table":       data.Table,
		}).Debug("building missing from one table, dropped")
	case CorrectionApplied:
		entry.WithFields(logrus.Fields{
			"correction": data.Correction,
			"buildings":  data.Buildings,
		}).Info("correction applied")
	case RecordIncomplete:
		entry.WithFields(logrus.Fields{
			"building_id": data.BuildingID,
			"status":      data.Status.String(),
			"upgrade":     data.Upgrade,
		}).Debug("incomplete record")
	case VacancyExcluded:
		entry.WithField("building_id", data.BuildingID).Debug("vacant unit excluded from 220.87")
	case UpgradeNotApplicable:
		entry.WithFields(logrus.Fields{
			"building_id": data.BuildingID,
			"upgrade":     data.Upgrade,
		}).Debug("upgrade not applicable")
	default:
		entry.Debug("event")
	}
	return nil
}
