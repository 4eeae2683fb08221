package course

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// ProgressMap maps a video ID to its watched percentage [0,100].
// Videos never reported are simply absent (read as 0).
type ProgressMap map[string]float64

type VideoState string

const (
	StateNotStarted VideoState = "not_started"
	StateInProgress VideoState = "in_progress"
	StateCompleted  VideoState = "completed"
)

// Summary is the aggregate completion state of a user over a catalog.
type Summary struct {
	PerVideo          map[string]VideoState `json:"perVideo"`
	CompletedCount    int                   `json:"completedCount"`
	OverallPercentage int                   `json:"overallPercentage"`
	AllCompleted      bool                  `json:"allCompleted"`
}

// RemainingTime breaks down the time left before the advanced tier unlocks;
// Hours is the remainder after whole days, not the total.
type RemainingTime struct {
	Days       int       `json:"days"`
	Hours      int       `json:"hours"`
	UnlockDate time.Time `json:"unlockDate"`
}

type Availability struct {
	Available bool           `json:"advancedContentAvailable"`
	Remaining *RemainingTime `json:"remainingTime"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ProgressReport is the normalized result of a progress report.
type ProgressReport struct {
	Progress            ProgressMap `json:"videoProgress"`
	CertificateEligible bool        `json:"certificateEligible"`
}

type CertificateStatus struct {
	Eligible    bool      `json:"certificateEligible"`
	CompletedAt null.Time `json:"courseCompletedAt"`
}
