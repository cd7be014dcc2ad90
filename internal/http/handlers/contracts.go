package handlers

import "github.com/go-chi/chi/v5"

// Mountable is implemented by each feature handler (intake, quote, payment,
// scan, suggest) so the router can assemble the API from a flat list.
type Mountable interface {
	Mount(r chi.Router)
}
