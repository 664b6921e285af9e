package mapper

import (
	"github.com/peter-kozarec/aphelion/pkg/common"
	"github.com/peter-kozarec/aphelion/pkg/utility/fixed"
	"time"
)

type BinaryBar struct {
	TimeStamp int64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

func (binaryBar BinaryBar) ToModelBar(bar *common.Bar) {
	bar.TimeStamp = time.Unix(0, binaryBar.TimeStamp)
	bar.Open = fixed.FromFloat64(binaryBar.Open)
	bar.High = fixed.FromFloat64(binaryBar.High)
	bar.Low = fixed.FromFloat64(binaryBar.Low)
	bar.Close = fixed.FromFloat64(binaryBar.Close)
	bar.Volume = fixed.FromFloat64(binaryBar.Volume)
}
