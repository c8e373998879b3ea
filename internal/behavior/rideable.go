package behavior

import "github.com/cockroachdb/errors"

// Seat places one rider relative to the entity origin.
type Seat struct {
	Position      [3]float64 `json:"position"`
	MinRiderCount int        `json:"min_rider_count,omitempty"`
	MaxRiderCount int        `json:"max_rider_count,omitempty"`
	LockRotation  bool       `json:"lock_rider_rotation,omitempty"`
}

// Rideable describes how an entity carries riders.
type Rideable struct {
	SeatCount      int      `json:"seat_count"`
	FamilyTypes    []string `json:"family_types,omitempty"`
	InteractText   string   `json:"interact_text,omitempty"`
	PullInEntities bool     `json:"pull_in_entities,omitempty"`
	Seats          []Seat   `json:"seats"`
}

// Component renders the rideable data as a component group entry.
func (r Rideable) Component() (ComponentGroup, error) {
	if r.SeatCount <= 0 {
		return nil, errors.New("rideable requires at least one seat")
	}
	if len(r.Seats) != r.SeatCount {
		return nil, errors.Newf("rideable declares %d seats but provides %d", r.SeatCount, len(r.Seats))
	}
	return ComponentGroup{"rideable": r}, nil
}

// SingleSeat is a convenience table for the common one-rider mount.
func SingleSeat(height float64) Rideable {
	return Rideable{
		SeatCount:    1,
		FamilyTypes:  []string{"player"},
		InteractText: "action.interact.ride",
		Seats: []Seat{
			{Position: [3]float64{0, height, 0}},
		},
	}
}
