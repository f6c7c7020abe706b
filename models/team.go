package models

import "time"

// Team is supplied by the caller and never mutated by the generation core.
// Rating and the presentational fields are carried for display; scheduling
// only ever reads the ID.
type Team struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Rating    int       `json:"rating" db:"rating"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	LogoURL *string `json:"logo_url,omitempty" db:"logo_url"`
	Coach   *string `json:"coach,omitempty" db:"coach"`
}
