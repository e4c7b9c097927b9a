package models

// TableStatus represents table occupancy
type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
)

// Table is a shared dining resource; at most one active order may hold it
type Table struct {
	ID     string      `json:"id"`
	Number int         `json:"number"`
	Status TableStatus `json:"status"`
}
