package watch

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mock_providers.go github.com/mediasweep/purgarr/pkg/watch HistoryProvider,MetadataProvider
