package datasource

import (
	"context"

	"github.com/peter-kozarec/aphelion/pkg/bus"
	"github.com/peter-kozarec/aphelion/pkg/common"
)

type BarDataSource interface {
	GetNext() (common.Bar, error)
}

func CreateBarDispatcher(r *bus.Router, ds BarDataSource) func(context.Context) error {
	return func(_ context.Context) error {
		var bar common.Bar
		var err error

		if bar, err = ds.GetNext(); err != nil {
			return err
		}
		if err = r.Post(bus.BarEvent, bar); err != nil {
			return err
		}
		return nil
	}
}
