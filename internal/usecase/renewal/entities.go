package renewal

import (
	"time"

	domainRenewal "leasehub-backend/internal/domain/renewal"
)

type FeedFilter struct {
	// Stage narrows the returned alerts; empty returns every stage.
	Stage string
}

type Feed struct {
	AsOf    time.Time                   `json:"as_of"`
	Alerts  []domainRenewal.Alert       `json:"alerts"`
	Summary domainRenewal.Summary       `json:"summary"`
	ByStage map[domainRenewal.Stage]int `json:"by_stage"`
}
