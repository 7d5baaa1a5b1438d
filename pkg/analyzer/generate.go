package analyzer

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mock_aggregator.go github.com/mediasweep/purgarr/pkg/analyzer StateAggregator
