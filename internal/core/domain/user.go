package domain

import "time"

// User is an account identified by an internal employee code. There is no
// password: the code is looked up as-is, matching the company directory.
type User struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	EmployeeID string    `json:"employee_id" bson:"employee_id"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
