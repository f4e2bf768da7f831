package render

import "confsite/internal/domain"

// Flash is a one-shot notice shown at the top of the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// Page is the data every template executes against.
type Page struct {
	Title    string
	User     *domain.User
	Flashes  []Flash
	Speakers []*domain.Speaker
	Dates    []*domain.ImportantDate
	Speaker  *domain.Speaker
	// Username refills the login form after a failed attempt.
	Username string
}
