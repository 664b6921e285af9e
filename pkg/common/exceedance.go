package common

import (
	"time"

	"github.com/peter-kozarec/aphelion/pkg/utility"
)

type Exceedance struct {
	Source      string              `json:"src,omitempty"`
	Symbol      string              `json:"symbol,omitempty"`
	ExecutionID utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
	Return      float64             `json:"return"`
	VaR         float64             `json:"var"`
	Confidence  float64             `json:"confidence"`
}
