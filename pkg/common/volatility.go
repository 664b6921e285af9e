package common

import (
	"time"

	"github.com/peter-kozarec/aphelion/pkg/utility"
)

type Volatility struct {
	Source      string              `json:"src,omitempty"`
	Symbol      string              `json:"symbol,omitempty"`
	ExecutionID utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
	Sigma       float64             `json:"sigma"`
}
