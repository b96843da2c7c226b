package domain

import "time"

type SlotType string

const (
	SlotDropOff SlotType = "drop_off"
	SlotPickup  SlotType = "pickup"
	SlotReturn  SlotType = "return"
)

// Slot — окно времени с ограниченной ёмкостью; распределяется бэкендом.
type Slot struct {
	ID        string    `json:"id"`
	Type      SlotType  `json:"type"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Capacity  int       `json:"capacity"`
	Booked    int       `json:"booked"`
	Available bool      `json:"available"`
}

type SlotRange struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type SlotList struct {
	Slots []Slot `json:"slots"`
	Total int    `json:"total"`
}
