package view

import "fmt"

// Slot is one of the 24 fixed hourly markers used as scaffolding by the
// week and day views.
type Slot struct {
	Hour  int
	Label string
}

// TimeSlots returns the 24 hour markers, labeled "0:00" through "23:00".
func TimeSlots() []Slot {
	slots := make([]Slot, 0, 24)
	for i := 0; i < 24; i++ {
		slots = append(slots, Slot{Hour: i, Label: fmt.Sprintf("%d:00", i)})
	}
	return slots
}
