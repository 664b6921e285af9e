package arima

type ModelOption func(*Model)

func WithEstimationMethod(method EstimationMethod) ModelOption {
	return func(m *Model) {
		m.method = method
	}
}

// WithConstant controls whether the mean of the differenced series is
// estimated. Enabled by default.
func WithConstant(include bool) ModelOption {
	return func(m *Model) {
		m.includeConstant = include
	}
}

// WithMaxIterations caps the optimizer budget of a single estimation.
func WithMaxIterations(iterations int) ModelOption {
	return func(m *Model) {
		if iterations > 0 {
			m.maxIterations = iterations
		}
	}
}

type SelectorOption func(*Selector)

func WithCriterion(criterion Criterion) SelectorOption {
	return func(s *Selector) {
		s.criterion = criterion
	}
}

// WithWorkers fans the grid out over parallel estimations. The fold stays
// deterministic regardless of the worker count.
func WithWorkers(workers int) SelectorOption {
	return func(s *Selector) {
		if workers > 0 {
			s.workers = workers
		}
	}
}

// WithModelOptions forwards options to every candidate model of a search.
func WithModelOptions(options ...ModelOption) SelectorOption {
	return func(s *Selector) {
		s.modelOptions = options
	}
}
