package handlers

import (
	"time"

	"github.com/amirhosseinghanipour/labcloud/internal/domain"
)

// applianceView is the JSON shape of one appliance history entry.
type applianceView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ProjectID string    `json:"projectId"`
	LED1      bool      `json:"led1"`
	LED2      bool      `json:"led2"`
	Fan1      bool      `json:"fan1"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

// waterLevelView is the JSON shape of one water-level history entry.
type waterLevelView struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	ProjectID    string    `json:"projectId"`
	LevelPercent float64   `json:"levelPercent"`
	Source       string    `json:"source"`
	CreatedAt    time.Time `json:"createdAt"`
}

// applianceCurrent is the derived current state for the appliances lab.
type applianceCurrent struct {
	LED1 bool `json:"led1"`
	LED2 bool `json:"led2"`
	Fan1 bool `json:"fan1"`
}

func toApplianceCurrent(p domain.StatePayload) applianceCurrent {
	if ap, ok := p.(domain.AppliancePayload); ok {
		return applianceCurrent{LED1: ap.LED1, LED2: ap.LED2, Fan1: ap.Fan1}
	}
	return applianceCurrent{}
}

func toApplianceViews(entries []*domain.StateEntry) []applianceView {
	views := make([]applianceView, 0, len(entries))
	for _, e := range entries {
		p, _ := e.Payload.(domain.AppliancePayload)
		views = append(views, applianceView{
			ID:        e.ID.String(),
			UserID:    e.UserID.String(),
			ProjectID: e.ProjectID.String(),
			LED1:      p.LED1,
			LED2:      p.LED2,
			Fan1:      p.Fan1,
			Source:    string(e.Source),
			CreatedAt: e.CreatedAt,
		})
	}
	return views
}

func toWaterLevelViews(entries []*domain.StateEntry) []waterLevelView {
	views := make([]waterLevelView, 0, len(entries))
	for _, e := range entries {
		p, _ := e.Payload.(domain.WaterLevelPayload)
		views = append(views, waterLevelView{
			ID:           e.ID.String(),
			UserID:       e.UserID.String(),
			ProjectID:    e.ProjectID.String(),
			LevelPercent: p.LevelPercent,
			Source:       string(e.Source),
			CreatedAt:    e.CreatedAt,
		})
	}
	return views
}

// parseTimestamp converts an optional unix-millisecond device timestamp.
func parseTimestamp(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms)
	return &t
}
