package common

import (
	"time"

	"github.com/peter-kozarec/aphelion/pkg/utility"
)

type Return struct {
	Source      string              `json:"src,omitempty"`
	Symbol      string              `json:"symbol,omitempty"`
	ExecutionID utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
	Value       float64             `json:"value"`
}
