package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"taxi-booking/internal/data/entity"
	"taxi-booking/pkg/events"

	"github.com/google/uuid"
)

type fakeTaxiRepo struct {
	taxis map[uuid.UUID]*entity.Taxi
}

func newFakeTaxiRepo(taxis ...*entity.Taxi) *fakeTaxiRepo {
	r := &fakeTaxiRepo{taxis: make(map[uuid.UUID]*entity.Taxi)}
	for _, t := range taxis {
		r.taxis[t.ID] = t
	}
	return r
}

func (r *fakeTaxiRepo) Create(_ context.Context, taxi *entity.Taxi) error {
	r.taxis[taxi.ID] = taxi
	return nil
}

func (r *fakeTaxiRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Taxi, error) {
	t, ok := r.taxis[id]
	if !ok || t.DeletedAt != nil {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTaxiRepo) FindAll(_ context.Context) ([]*entity.Taxi, error) {
	var out []*entity.Taxi
	for _, t := range r.taxis {
		if t.DeletedAt == nil {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaxiRepo) FindAvailable(_ context.Context) ([]*entity.Taxi, error) {
	var out []*entity.Taxi
	for _, t := range r.taxis {
		if t.DeletedAt == nil && t.IsAvailable {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaxiRepo) Update(_ context.Context, taxi *entity.Taxi) error {
	if _, ok := r.taxis[taxi.ID]; !ok {
		return fmt.Errorf("taxi %s not found", taxi.ID)
	}
	r.taxis[taxi.ID] = taxi
	return nil
}

func (r *fakeTaxiRepo) Delete(_ context.Context, id uuid.UUID) error {
	t, ok := r.taxis[id]
	if !ok || t.DeletedAt != nil {
		return fmt.Errorf("taxi %s not found", id)
	}
	now := time.Now()
	t.DeletedAt = &now
	t.IsAvailable = false
	return nil
}

type fakeAvailabilityRepo struct {
	mu    sync.Mutex
	slots []*entity.Availability
}

func (r *fakeAvailabilityRepo) add(date time.Time, slot string, available bool) *entity.Availability {
	a := &entity.Availability{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		Date:         date,
		TimeSlot:     slot,
		IsAvailable:  available,
	}
	r.slots = append(r.slots, a)
	return a
}

func (r *fakeAvailabilityRepo) Create(_ context.Context, slot *entity.Availability) error {
	r.slots = append(r.slots, slot)
	return nil
}

func (r *fakeAvailabilityRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Availability, error) {
	for _, s := range r.slots {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeAvailabilityRepo) FindFrom(_ context.Context, from time.Time) ([]*entity.Availability, error) {
	var out []*entity.Availability
	for _, s := range r.slots {
		if !s.Date.Before(from) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeAvailabilityRepo) FindDatesFrom(_ context.Context, from time.Time) ([]time.Time, error) {
	var out []time.Time
	for _, s := range r.slots {
		if s.Date.Before(from) || slices.ContainsFunc(out, s.Date.Equal) {
			continue
		}
		out = append(out, s.Date)
	}
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return out, nil
}

func (r *fakeAvailabilityRepo) FindAvailableByDate(_ context.Context, date time.Time) ([]*entity.Availability, error) {
	var out []*entity.Availability
	for _, s := range r.slots {
		if s.Date.Equal(date) && s.IsAvailable {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeAvailabilityRepo) Toggle(_ context.Context, id uuid.UUID) (*entity.Availability, error) {
	for _, s := range r.slots {
		if s.ID == id {
			s.IsAvailable = !s.IsAvailable
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeAvailabilityRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, s := range r.slots {
		if s.ID == id {
			r.slots = slices.Delete(r.slots, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("availability %s not found", id)
}

// bookSlot flips every matching available slot, like the SQL update.
func (r *fakeAvailabilityRepo) bookSlot(date time.Time, slot string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	booked := false
	for _, s := range r.slots {
		if s.Date.Equal(date) && s.TimeSlot == slot && s.IsAvailable {
			s.IsAvailable = false
			booked = true
		}
	}
	return booked
}

type fakeRideRepo struct {
	mu    sync.Mutex
	slots *fakeAvailabilityRepo
	rides []*entity.RideWithDetails
}

func (r *fakeRideRepo) CreateWithSlot(_ context.Context, ride *entity.Ride) error {
	if r.slots == nil || !r.slots.bookSlot(ride.RideDate, ride.RideTime) {
		return fmt.Errorf("%w: %s", entity.ErrSlotUnavailable, ride.RideTime)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rides = append(r.rides, &entity.RideWithDetails{Ride: *ride})
	return nil
}

func (r *fakeRideRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.RideWithDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ride := range r.rides {
		if ride.ID == id {
			cp := *ride
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRideRepo) FindAllWithDetails(_ context.Context) ([]*entity.RideWithDetails, error) {
	return r.rides, nil
}

func (r *fakeRideRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.RideWithDetails, error) {
	var mine []*entity.RideWithDetails
	for _, ride := range r.rides {
		if ride.UserID == userID {
			mine = append(mine, ride)
		}
	}
	if offset >= len(mine) {
		return nil, nil
	}
	return mine[offset:min(offset+limit, len(mine))], nil
}

func (r *fakeRideRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, ride := range r.rides {
		if ride.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeRideRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to entity.RideStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ride := range r.rides {
		if ride.ID != id {
			continue
		}
		if ride.Status != from {
			return fmt.Errorf("%w: ride %s is no longer %s", entity.ErrIllegalTransition, id, from)
		}
		ride.Status = to
		return nil
	}
	return fmt.Errorf("%w: ride %s is no longer %s", entity.ErrIllegalTransition, id, from)
}

func (r *fakeRideRepo) statuses() map[uuid.UUID]entity.RideStatus {
	out := make(map[uuid.UUID]entity.RideStatus, len(r.rides))
	for _, ride := range r.rides {
		out[ride.ID] = ride.Status
	}
	return out
}

type fakeRouter struct {
	route *entity.Route
	err   error
	calls int
}

func (f *fakeRouter) Lookup(_ context.Context, _, _ entity.Point) (*entity.Route, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.route, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.RideEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event events.RideEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTaxi(name string, pricePerKm, multiplier float64, available bool) *entity.Taxi {
	return &entity.Taxi{
		Base:        entity.Base{ID: uuid.New()},
		Name:        name,
		VehicleType: "sedan",
		PricePerKm:  pricePerKm,
		Multiplier:  multiplier,
		IsAvailable: available,
	}
}

func newIdentity(admin bool) *entity.Identity {
	return &entity.Identity{
		Profile: &entity.Profile{
			BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
			Email:        "rider@example.com",
			FullName:     "Rider",
			IsAdmin:      admin,
		},
		SessionToken: uuid.New(),
	}
}

func ptr[T any](v T) *T {
	return &v
}
