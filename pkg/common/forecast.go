package common

import (
	"time"

	"github.com/peter-kozarec/aphelion/pkg/utility"
)

type Forecast struct {
	Source      string              `json:"src,omitempty"`
	Symbol      string              `json:"symbol,omitempty"`
	ExecutionID utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
	Horizon     int                 `json:"horizon"`
	Sigma       float64             `json:"sigma"`
	VaR         float64             `json:"var"`
	ES          float64             `json:"es"`
	Confidence  float64             `json:"confidence"`
}
