package models

import "time"

type User struct {
	ID        int64     `json:"id,omitempty" db:"id,omitempty"`
	Username  string    `json:"username,omitempty" db:"username,omitempty"`
	Email     string    `json:"email,omitempty" db:"email,omitempty"`
	Password  string    `json:"password,omitempty" db:"password,omitempty"`
	Role      string    `json:"role,omitempty" db:"role,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty" db:"created_at,omitempty"`
}
