package dataset

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/huangsam/motionchart/internal/contract"
	"github.com/huangsam/motionchart/schema"
)

// MockProvider is a mock implementation of DatasetProvider for testing.
type MockProvider struct {
	mock.Mock
}

var _ contract.DatasetProvider = &MockProvider{} // Compile-time check

// Load implements the DatasetProvider interface.
func (m *MockProvider) Load(ctx context.Context) (*schema.Dataset, error) {
	args := m.Called(ctx)
	ds, _ := args.Get(0).(*schema.Dataset)
	return ds, args.Error(1)
}

// Source implements the DatasetProvider interface.
func (m *MockProvider) Source() string {
	args := m.Called()
	return args.String(0)
}
