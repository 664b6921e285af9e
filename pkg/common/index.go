package common

import (
	"go.uber.org/zap"
)

type Index struct {
	Id     int64
	Symbol string
	Name   string
	Digits int
}

func (i Index) Fields() []zap.Field {
	return []zap.Field{
		zap.Int64("id", i.Id),
		zap.String("symbol", i.Symbol),
		zap.String("name", i.Name),
		zap.Int("digits", i.Digits),
	}
}
