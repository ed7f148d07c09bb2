package models

import "time"

// Trip represents one journey in the journal. A trip owns zero or more
// entries linked by Entry.TripID; deleting a trip does not cascade to
// its entries.
type Trip struct {
	Record

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

// TripUpdate is a partial update: nil fields keep their prior value.
type TripUpdate struct {
	Title       *string
	Description *string
	StartDate   *string
	EndDate     *string
}

// ApplyUpdate copies the provided fields onto the trip, forces the sync
// status back to pending, and refreshes UpdatedAt.
func (t *Trip) ApplyUpdate(u TripUpdate, now time.Time) {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.StartDate != nil {
		t.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		t.EndDate = *u.EndDate
	}
	t.MarkPending(now)
}

// TripRow is the wire representation of a trip in the remote table.
// The remote side has no sync_status column; that field is local-only.
type TripRow struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartDate   string    `json:"start_date,omitempty"`
	EndDate     string    `json:"end_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Deleted     bool      `json:"deleted"`
}

// Row converts the local trip into its remote wire representation.
func (t Trip) Row() TripRow {
	return TripRow{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Deleted:     t.Deleted,
	}
}

// Trip converts a downloaded row into a local trip carrying the given
// sync status. Remote-origin records arrive already synced.
func (r TripRow) Trip(status SyncStatus) Trip {
	return Trip{
		Record: Record{
			ID:         r.ID,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
			SyncStatus: status,
			Deleted:    r.Deleted,
		},
		Title:       r.Title,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}
