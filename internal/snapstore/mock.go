package snapstore

import (
	"time"

	"climatlas/schema"

	"climatlas/internal/contract"

	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetObservationStore implements the StoreManager interface.
func (m *MockStoreManager) GetObservationStore() contract.ObservationStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ObservationStore)
	return store
}

// GetSnapshotStore implements the StoreManager interface.
func (m *MockStoreManager) GetSnapshotStore() contract.SnapshotStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SnapshotStore)
	return store
}

// MockObservationStore is a mock implementation of ObservationStore for testing.
type MockObservationStore struct {
	mock.Mock
}

var _ contract.ObservationStore = &MockObservationStore{} // Compile-time check

// PutObservations implements the ObservationStore interface.
func (m *MockObservationStore) PutObservations(obs []schema.Observation) error {
	args := m.Called(obs)
	return args.Error(0)
}

// GetObservations implements the ObservationStore interface.
func (m *MockObservationStore) GetObservations() ([]schema.Observation, error) {
	args := m.Called()
	obs, _ := args.Get(0).([]schema.Observation)
	return obs, args.Error(1)
}

// LastIngestTime implements the ObservationStore interface.
func (m *MockObservationStore) LastIngestTime() (time.Time, error) {
	args := m.Called()
	return args.Get(0).(time.Time), args.Error(1)
}

// Close implements the ObservationStore interface.
func (m *MockObservationStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockSnapshotStore is a mock implementation of SnapshotStore for testing.
type MockSnapshotStore struct {
	mock.Mock
}

var _ contract.SnapshotStore = &MockSnapshotStore{} // Compile-time check

// BeginSnapshot implements the SnapshotStore interface.
func (m *MockSnapshotStore) BeginSnapshot(createdAt time.Time, metric schema.Metric, mode schema.DisplayMode, year, brushStart, brushEnd int) (int64, error) {
	args := m.Called(createdAt, metric, mode, year, brushStart, brushEnd)
	return args.Get(0).(int64), args.Error(1)
}

// RecordDerived implements the SnapshotStore interface.
func (m *MockSnapshotStore) RecordDerived(snapshotID int64, iso3, country string, value *float64) error {
	args := m.Called(snapshotID, iso3, country, value)
	return args.Error(0)
}

// EndSnapshot implements the SnapshotStore interface.
func (m *MockSnapshotStore) EndSnapshot(snapshotID int64, countryCount int) error {
	args := m.Called(snapshotID, countryCount)
	return args.Error(0)
}

// GetAllSnapshots implements the SnapshotStore interface.
func (m *MockSnapshotStore) GetAllSnapshots() ([]schema.SnapshotRecord, error) {
	args := m.Called()
	recs, _ := args.Get(0).([]schema.SnapshotRecord)
	return recs, args.Error(1)
}

// GetAllDerived implements the SnapshotStore interface.
func (m *MockSnapshotStore) GetAllDerived() ([]schema.DerivedRecord, error) {
	args := m.Called()
	recs, _ := args.Get(0).([]schema.DerivedRecord)
	return recs, args.Error(1)
}

// GetStatus implements the SnapshotStore interface.
func (m *MockSnapshotStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the SnapshotStore interface.
func (m *MockSnapshotStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
