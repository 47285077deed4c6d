package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrExists is returned when adding an attraction whose name is already
// taken. Names are the table's primary key.
var ErrExists = errors.New("attraction already exists")

const unknownValue = "unknown"

// Add inserts one attraction. Name, city, ward and description are
// required; the display fields default to "unknown", list fields to empty,
// and last_updated is stamped with today's date. Duplicate names are
// rejected with ErrExists.
func (s *Store) Add(ctx context.Context, a Attraction) error {
	for field, value := range map[string]string{
		"name":        a.Name,
		"city":        a.City,
		"ward":        a.Ward,
		"description": a.Description,
	} {
		if value == "" {
			return fmt.Errorf("missing required field: %s", field)
		}
	}

	if a.TicketPrice == "" {
		a.TicketPrice = unknownValue
	}
	if a.OpeningHours == "" {
		a.OpeningHours = unknownValue
	}
	if a.RecommendedDuration == "" {
		a.RecommendedDuration = unknownValue
	}
	a.LastUpdated = time.Now().Format("2006-01-02")

	transport, err := encodeTransport(a.Transportation)
	if err != nil {
		return fmt.Errorf("failed to encode transportation: %w", err)
	}

	existing, err := s.ByName(ctx, a.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", ErrExists, a.Name)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO attractions (
			name, city, ward, description, address, latitude, longitude,
			ticket_price, opening_hours, recommended_duration, categories,
			transportation, nearby_attractions, website, phone, last_updated
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Name, a.City, a.Ward, a.Description, a.Address,
		a.Latitude, a.Longitude, a.TicketPrice, a.OpeningHours,
		a.RecommendedDuration, joinList(a.Categories), transport,
		joinList(a.NearbyAttractions), a.Website, a.Phone, a.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to insert attraction: %w", err)
	}

	if s.index != nil {
		if err := s.index.Add(a); err != nil {
			// The row is committed; a stale index self-heals on the
			// next reindex.
			return nil
		}
	}
	return nil
}
