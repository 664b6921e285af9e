package bus

type EventId uint8

const (
	BarEvent EventId = iota
	ReturnEvent
	VolatilityEvent
	ForecastEvent
	ExceedanceEvent
)
