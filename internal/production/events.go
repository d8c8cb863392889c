package production

import (
	"time"

	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/event"
)

// NewProductionCompletedEvent creates the event published after a committed run.
// lowPackaging is the post-run packaging when it fell below its minimum stock.
func NewProductionCompletedEvent(run domain.ProductionRun, lowPackaging *domain.Packaging) event.Event {
	return event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.ProductionCompleted,
		Payload: domain.ProductionCompletedPayload{
			RunID:            run.ID,
			ProductID:        run.ProductID,
			ProductName:      run.ProductName,
			UnitsProduced:    run.UnitsProduced,
			BatchVolumeUnits: run.BatchVolumeUnits,
			UnitCost:         run.UnitCost,
			Mutations:        run.Mutations,
			LowPackaging:     lowPackaging,
			Timestamp:        time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			event.MetadataKeyProductID: run.ProductID,
			event.MetadataKeyUnits:     run.UnitsProduced,
			event.MetadataKeySource:    "production",
		},
	}
}
