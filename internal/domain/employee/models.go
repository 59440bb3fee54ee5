package employee

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("employee not found")

// Employee master data is owned by HR; this service only reads it.
type Employee struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	MonthlySalary float64   `json:"monthlySalary"`
	JobRole       string    `json:"jobRole"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
