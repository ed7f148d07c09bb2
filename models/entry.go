package models

import "time"

// Entry is a single journal entry inside a trip: a dated note with an
// optional free-text place name, coordinates, and locally captured
// images referenced by path.
type Entry struct {
	Record

	TripID    string   `json:"trip_id"`
	Title     string   `json:"title"`
	Content   string   `json:"content,omitempty"`
	Location  string   `json:"location,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Images    []string `json:"images,omitempty"`
}

// EntryUpdate is a partial update: nil fields keep their prior value.
// TripID is deliberately absent — an entry never moves between trips.
type EntryUpdate struct {
	Title     *string
	Content   *string
	Location  *string
	Latitude  *float64
	Longitude *float64
	Images    *[]string
}

// ApplyUpdate copies the provided fields onto the entry, forces the
// sync status back to pending, and refreshes UpdatedAt.
func (e *Entry) ApplyUpdate(u EntryUpdate, now time.Time) {
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Content != nil {
		e.Content = *u.Content
	}
	if u.Location != nil {
		e.Location = *u.Location
	}
	if u.Latitude != nil {
		e.Latitude = u.Latitude
	}
	if u.Longitude != nil {
		e.Longitude = u.Longitude
	}
	if u.Images != nil {
		e.Images = *u.Images
	}
	e.MarkPending(now)
}

// EntryRow is the wire representation of an entry in the remote table.
// Images stay local (device file paths are meaningless remotely), and
// sync_status is a local-only column.
type EntryRow struct {
	ID        string    `json:"id"`
	TripID    string    `json:"trip_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Location  string    `json:"location,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Deleted   bool      `json:"deleted"`
}

// Row converts the local entry into its remote wire representation.
func (e Entry) Row() EntryRow {
	return EntryRow{
		ID:        e.ID,
		TripID:    e.TripID,
		Title:     e.Title,
		Content:   e.Content,
		Location:  e.Location,
		Latitude:  e.Latitude,
		Longitude: e.Longitude,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
		Deleted:   e.Deleted,
	}
}

// Entry converts a downloaded row into a local entry carrying the given
// sync status.
func (r EntryRow) Entry(status SyncStatus) Entry {
	return Entry{
		Record: Record{
			ID:         r.ID,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
			SyncStatus: status,
			Deleted:    r.Deleted,
		},
		TripID:    r.TripID,
		Title:     r.Title,
		Content:   r.Content,
		Location:  r.Location,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}
}
