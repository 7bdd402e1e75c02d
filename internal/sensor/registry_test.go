package sensor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/calewin/sensornet/internal/protocol"
)

// MockRepository is a test implementation of Repository.
type MockRepository struct {
	mu      sync.Mutex
	records map[int]*Record
	// For testing error paths
	saveErr   error
	deleteErr error
	listErr   error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		records: make(map[int]*Record),
	}
}

func (m *MockRepository) GetByID(_ context.Context, id int) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec, ok := m.records[id]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, ErrSensorNotFound
}

func (m *MockRepository) List(_ context.Context) ([]Record, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]Record, 0, len(m.records))
	for _, rec := range m.records {
		records = append(records, *rec)
	}
	return records, nil
}

func (m *MockRepository) Save(_ context.Context, rec *Record) error {
	if m.saveErr != nil {
		return m.saveErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *rec
	m.records[rec.ID] = &cp
	return nil
}

func (m *MockRepository) Delete(_ context.Context, id int) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return ErrSensorNotFound
	}
	delete(m.records, id)
	return nil
}

// addRecord adds a record directly to the mock for test setup.
func (m *MockRepository) addRecord(rec *Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.records[rec.ID] = &cp
}

func TestRegistry_Load(t *testing.T) {
	repo := NewMockRepository()
	registry := NewRegistry(repo)
	ctx := context.Background()

	repo.addRecord(&Record{ID: 1, ProtocolVersion: "2.0"})
	repo.addRecord(&Record{ID: 2})

	if err := registry.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if registry.Count() != 2 {
		t.Errorf("Count() = %d, want 2", registry.Count())
	}

	s, err := registry.Get(1)
	if err != nil {
		t.Fatalf("Get(1) error = %v", err)
	}
	if s.ProtocolVersion() != "2.0" {
		t.Errorf("ProtocolVersion() = %q, want %q", s.ProtocolVersion(), "2.0")
	}

	t.Run("propagates repository failure", func(t *testing.T) {
		repo.listErr = errors.New("db gone")
		if err := registry.Load(ctx); err == nil {
			t.Error("Load() error = nil, want error")
		}
		repo.listErr = nil
	})
}

func TestRegistry_Get(t *testing.T) {
	repo := NewMockRepository()
	registry := NewRegistry(repo)

	_, err := registry.Get(42)
	if !errors.Is(err, ErrSensorNotFound) {
		t.Errorf("Get(42) error = %v, want ErrSensorNotFound", err)
	}
}

func TestRegistry_GetOrCreate(t *testing.T) {
	repo := NewMockRepository()
	registry := NewRegistry(repo)
	ctx := context.Background()

	s, err := registry.GetOrCreate(ctx, 7)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if s.ID != 7 {
		t.Errorf("ID = %d, want 7", s.ID)
	}

	// New node is persisted immediately.
	if _, err := repo.GetByID(ctx, 7); err != nil {
		t.Errorf("repo.GetByID(7) error = %v, want record present", err)
	}

	t.Run("returns the same live sensor", func(t *testing.T) {
		again, err := registry.GetOrCreate(ctx, 7)
		if err != nil {
			t.Fatalf("GetOrCreate() error = %v", err)
		}
		if again != s {
			t.Error("GetOrCreate() returned a different instance for a known node")
		}
	})

	t.Run("propagates persistence failure", func(t *testing.T) {
		repo.saveErr = errors.New("disk full")
		if _, err := registry.GetOrCreate(ctx, 8); err == nil {
			t.Error("GetOrCreate() error = nil, want error")
		}
		repo.saveErr = nil
		// Failed create must not leave a live sensor behind.
		if _, err := registry.Get(8); !errors.Is(err, ErrSensorNotFound) {
			t.Errorf("Get(8) error = %v, want ErrSensorNotFound", err)
		}
	})
}

func TestRegistry_Update(t *testing.T) {
	repo := NewMockRepository()
	registry := NewRegistry(repo)
	ctx := context.Background()

	err := registry.Update(ctx, 3, func(s *Sensor) error {
		s.AddChildSensor(0, protocol.PresentationTemp, "greenhouse temp")
		return s.UpdateChildValue(0, protocol.SetReqTemp, "21.5")
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	rec, err := repo.GetByID(ctx, 3)
	if err != nil {
		t.Fatalf("repo.GetByID(3) error = %v", err)
	}
	if len(rec.Children) != 1 || rec.Children[0].Values[protocol.SetReqTemp] != "21.5" {
		t.Errorf("persisted children = %+v, want temp child with value", rec.Children)
	}

	t.Run("fn error skips persistence", func(t *testing.T) {
		wantErr := errors.New("bad message")
		err := registry.Update(ctx, 3, func(s *Sensor) error {
			s.SketchName = "changed"
			return wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("Update() error = %v, want %v", err, wantErr)
		}
		rec, _ := repo.GetByID(ctx, 3)
		if rec.SketchName == "changed" {
			t.Error("failed update was persisted")
		}
	})
}

func TestRegistry_Delete(t *testing.T) {
	repo := NewMockRepository()
	registry := NewRegistry(repo)
	ctx := context.Background()

	if _, err := registry.GetOrCreate(ctx, 5); err != nil {
		t.Fatal(err)
	}

	if err := registry.Delete(ctx, 5); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := registry.Get(5); !errors.Is(err, ErrSensorNotFound) {
		t.Errorf("Get(5) error = %v, want ErrSensorNotFound", err)
	}

	t.Run("unknown node", func(t *testing.T) {
		if err := registry.Delete(ctx, 99); !errors.Is(err, ErrSensorNotFound) {
			t.Errorf("Delete(99) error = %v, want ErrSensorNotFound", err)
		}
	})
}

func TestRegistry_Persist(t *testing.T) {
	repo := NewMockRepository()
	registry := NewRegistry(repo)
	ctx := context.Background()

	if err := registry.Persist(ctx, 42); !errors.Is(err, ErrSensorNotFound) {
		t.Errorf("Persist(unknown) error = %v, want ErrSensorNotFound", err)
	}

	if _, err := registry.GetOrCreate(ctx, 10); err != nil {
		t.Fatal(err)
	}

	// Sketch name and version are written together by Update, so a
	// persisted record must never show one without the other.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			name := "sketch-" + string(rune('a'+i%26))
			_ = registry.Update(ctx, 10, func(s *Sensor) error {
				s.SketchName = name
				s.SketchVersion = name
				return nil
			})
		}
	}()

	for i := 0; i < 200; i++ {
		if err := registry.Persist(ctx, 10); err != nil {
			t.Fatalf("Persist() error = %v", err)
		}
		rec, err := repo.GetByID(ctx, 10)
		if err != nil {
			t.Fatal(err)
		}
		if rec.SketchName != rec.SketchVersion {
			t.Fatalf("torn record: name %q version %q", rec.SketchName, rec.SketchVersion)
		}
	}
	<-done
}

func TestRegistry_PersistAll(t *testing.T) {
	repo := NewMockRepository()
	registry := NewRegistry(repo)
	ctx := context.Background()

	for id := 1; id <= 3; id++ {
		if _, err := registry.GetOrCreate(ctx, id); err != nil {
			t.Fatal(err)
		}
	}

	s, _ := registry.Get(2)
	s.SketchName = "updated"

	if err := registry.PersistAll(ctx); err != nil {
		t.Fatalf("PersistAll() error = %v", err)
	}

	rec, err := repo.GetByID(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if rec.SketchName != "updated" {
		t.Errorf("SketchName = %q, want %q", rec.SketchName, "updated")
	}
}

func TestRegistry_GetStats(t *testing.T) {
	repo := NewMockRepository()
	registry := NewRegistry(repo)
	ctx := context.Background()

	for id := 1; id <= 2; id++ {
		err := registry.Update(ctx, id, func(s *Sensor) error {
			s.AddChildSensor(0, protocol.PresentationBinary, "")
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	err := registry.Update(ctx, 1, func(s *Sensor) error {
		s.InitSmartSleepMode()
		return s.SetProtocolVersion("2.2")
	})
	if err != nil {
		t.Fatal(err)
	}

	stats := registry.GetStats()
	if stats.TotalSensors != 2 {
		t.Errorf("TotalSensors = %d, want 2", stats.TotalSensors)
	}
	if stats.SmartSleepNodes != 1 {
		t.Errorf("SmartSleepNodes = %d, want 1", stats.SmartSleepNodes)
	}
	if stats.ByVersion["2.2"] != 1 || stats.ByVersion[DefaultProtocolVersion] != 1 {
		t.Errorf("ByVersion = %v, want one 2.2 and one default", stats.ByVersion)
	}
}

func TestRegistry_NodeIDs(t *testing.T) {
	repo := NewMockRepository()
	registry := NewRegistry(repo)
	ctx := context.Background()

	for _, id := range []int{9, 3, 7} {
		if _, err := registry.GetOrCreate(ctx, id); err != nil {
			t.Fatal(err)
		}
	}

	ids := registry.NodeIDs()
	want := []int{3, 7, 9}
	if len(ids) != len(want) {
		t.Fatalf("NodeIDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("NodeIDs() = %v, want %v", ids, want)
		}
	}
}
