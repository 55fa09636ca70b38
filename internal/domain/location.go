package domain

// Location is a place where items can be picked up
type Location struct {
	ID                   int64
	Title                string
	PickupInstructions   string
	AllowLockDaysInRange bool
	Address              string
	Latitude             *float64
	Longitude            *float64
}

// Item is a bookable resource
type Item struct {
	ID     int64
	Title  string
	Status string
}

// ItemStatusPublished marks items visible to users
const ItemStatusPublished = "publish"
