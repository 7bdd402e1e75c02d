package sensor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registry owns the live sensors for the whole network and writes
// durable state through a Repository. Live sensors carry transient
// state (message queue, desired-state shadow) that only exists here,
// so the registry is the single source of truth while the process
// runs; the repository holds what survives a restart.
//
// All public methods are thread-safe. Sensor itself does no locking,
// so mutation happens inside Update, which holds the registry lock
// for the duration of the closure and persists afterwards.
type Registry struct {
	repo    Repository
	sensors map[int]*Sensor
	mu      sync.RWMutex
	logger  Logger
}

// NewRegistry creates a sensor registry backed by the given
// repository.
func NewRegistry(repo Repository) *Registry {
	return &Registry{
		repo:    repo,
		sensors: make(map[int]*Sensor),
		logger:  noopLogger{},
	}
}

// SetLogger sets the logger for the registry. New and loaded sensors
// inherit it.
func (r *Registry) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
	for _, s := range r.sensors {
		s.SetLogger(logger)
	}
}

// Load rebuilds the live sensor set from the repository. This should
// be called once on application startup; any sensors already in memory
// are discarded.
func (r *Registry) Load(ctx context.Context) error {
	records, err := r.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loading sensors: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sensors = make(map[int]*Sensor, len(records))
	for i := range records {
		s := FromRecord(&records[i])
		s.SetLogger(r.logger)
		r.sensors[s.ID] = s
	}

	r.logger.Info("sensors loaded", "count", len(records))
	return nil
}

// Get retrieves a live sensor by node id.
// Returns ErrSensorNotFound if the node is unknown.
func (r *Registry) Get(id int) (*Sensor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sensors[id]
	if !ok {
		return nil, fmt.Errorf("%w: node %d", ErrSensorNotFound, id)
	}
	return s, nil
}

// GetOrCreate retrieves a live sensor, creating and persisting a new
// one when the node has not been seen before.
func (r *Registry) GetOrCreate(ctx context.Context, id int) (*Sensor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sensors[id]; ok {
		return s, nil
	}

	s := New(id)
	s.SetLogger(r.logger)
	if err := r.repo.Save(ctx, s.Snapshot()); err != nil {
		return nil, fmt.Errorf("persisting new sensor: %w", err)
	}
	r.sensors[id] = s

	r.logger.Info("sensor created", "node", id)
	return s, nil
}

// Update runs fn against the live sensor under the registry lock and
// persists the result. The sensor is created first if the node is
// unknown. If fn returns an error the sensor is not persisted; any
// in-memory mutation fn already made is kept, matching the live-first
// model where durable state may trail the live one.
func (r *Registry) Update(ctx context.Context, id int, fn func(*Sensor) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sensors[id]
	if !ok {
		s = New(id)
		s.SetLogger(r.logger)
		r.sensors[id] = s
	}

	if err := fn(s); err != nil {
		return err
	}

	if err := r.repo.Save(ctx, s.Snapshot()); err != nil {
		return fmt.Errorf("persisting sensor: %w", err)
	}
	return nil
}

// Delete removes a sensor from memory and from the repository.
// Unknown nodes are not an error when absent from both.
func (r *Registry) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, live := r.sensors[id]
	delete(r.sensors, id)

	if err := r.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, ErrSensorNotFound) {
			return err
		}
		if !live {
			return err
		}
	}

	r.logger.Info("sensor deleted", "node", id)
	return nil
}

// Persist writes the sensor's current durable state to the repository.
func (r *Registry) Persist(ctx context.Context, id int) error {
	r.mu.RLock()
	s, ok := r.sensors[id]
	var rec *Record
	if ok {
		rec = s.Snapshot()
	}
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: node %d", ErrSensorNotFound, id)
	}
	return r.repo.Save(ctx, rec)
}

// PersistAll writes every live sensor to the repository. Used at
// shutdown so a restart resumes from the latest state.
func (r *Registry) PersistAll(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, s := range r.sensors {
		if err := r.repo.Save(ctx, s.Snapshot()); err != nil {
			return fmt.Errorf("persisting node %d: %w", id, err)
		}
	}
	return nil
}

// NodeIDs returns the ids of all live sensors in ascending order.
func (r *Registry) NodeIDs() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int, 0, len(r.sensors))
	for id := range r.sensors {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Count returns the number of live sensors.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sensors)
}

// Stats returns registry statistics for monitoring.
type Stats struct {
	TotalSensors    int
	SmartSleepNodes int
	ByVersion       map[string]int
}

// GetStats returns current registry statistics.
func (r *Registry) GetStats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{
		TotalSensors: len(r.sensors),
		ByVersion:    make(map[string]int),
	}

	for _, s := range r.sensors {
		stats.ByVersion[s.ProtocolVersion()]++
		if s.IsSmartSleepNode() {
			stats.SmartSleepNodes++
		}
	}

	return stats
}
