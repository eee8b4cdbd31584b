package domain

// Car represents a car owned by a driver.
type Car struct {
	ID      string
	OwnerID string
	Brand   string
	Model   string
	Color   string
}
