package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const selectColumns = `name, city, ward, description, address, latitude, longitude,
	ticket_price, opening_hours, recommended_duration, categories, transportation,
	nearby_attractions, website, phone, last_updated`

func scanAttraction(rows interface{ Scan(...any) error }) (Attraction, error) {
	var a Attraction
	var categories, transportation, nearby string
	err := rows.Scan(
		&a.Name, &a.City, &a.Ward, &a.Description, &a.Address,
		&a.Latitude, &a.Longitude, &a.TicketPrice, &a.OpeningHours,
		&a.RecommendedDuration, &categories, &transportation, &nearby,
		&a.Website, &a.Phone, &a.LastUpdated,
	)
	if err != nil {
		return Attraction{}, err
	}
	a.Categories = splitList(categories)
	a.Transportation = decodeTransport(transportation)
	a.NearbyAttractions = splitList(nearby)
	return a, nil
}

func (s *Store) queryAttractions(ctx context.Context, where string, args ...any) ([]Attraction, error) {
	q := "SELECT " + selectColumns + " FROM attractions"
	if where != "" {
		q += " WHERE " + where
	}
	q += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attractions: %w", err)
	}
	defer rows.Close()

	result := []Attraction{}
	for rows.Next() {
		a, err := scanAttraction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attraction: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// All returns every attraction, ordered by name.
func (s *Store) All(ctx context.Context) ([]Attraction, error) {
	return s.queryAttractions(ctx, "")
}

// ByName returns the attraction with the given exact name, or nil when no
// such record exists. Absence is not an error.
func (s *Store) ByName(ctx context.Context, name string) (*Attraction, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM attractions WHERE name = ?", name)
	a, err := scanAttraction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load attraction %q: %w", name, err)
	}
	return &a, nil
}

// Search filters attractions by any combination of a substring keyword
// (matched against name, description and address), a category and a ward.
// Empty filters are skipped; supplied filters are combined with AND.
func (s *Store) Search(ctx context.Context, keyword, category, ward string) ([]Attraction, error) {
	var where []string
	var args []any

	if keyword != "" {
		if s.index != nil {
			names, err := s.index.Lookup(keyword)
			if err == nil {
				if len(names) == 0 {
					return []Attraction{}, nil
				}
				placeholders := strings.Repeat("?,", len(names))
				where = append(where, "name IN ("+placeholders[:len(placeholders)-1]+")")
				for _, n := range names {
					args = append(args, n)
				}
			} else {
				where, args = appendKeywordContains(where, args, keyword)
			}
		} else {
			where, args = appendKeywordContains(where, args, keyword)
		}
	}
	if category != "" {
		// Categories are comma-joined; a substring match tolerates
		// partial labels and stays case-sensitive like the keyword leg.
		where = append(where, "instr(categories, ?) > 0")
		args = append(args, category)
	}
	if ward != "" {
		where = append(where, "ward = ?")
		args = append(args, ward)
	}

	return s.queryAttractions(ctx, strings.Join(where, " AND "), args...)
}

// appendKeywordContains is the fallback keyword filter used when the index
// is unavailable. instr is a byte-wise search, so it keeps the index path's
// case-sensitive literal-substring semantics where LIKE would not.
func appendKeywordContains(where []string, args []any, keyword string) ([]string, []any) {
	where = append(where,
		"(instr(name, ?) > 0 OR instr(description, ?) > 0 OR instr(address, ?) > 0)")
	return where, append(args, keyword, keyword, keyword)
}

// ByCategory returns attractions tagged with the category.
func (s *Store) ByCategory(ctx context.Context, category string) ([]Attraction, error) {
	return s.Search(ctx, "", category, "")
}

// ByWard returns attractions located in the ward.
func (s *Store) ByWard(ctx context.Context, ward string) ([]Attraction, error) {
	return s.Search(ctx, "", "", ward)
}

// TransportationInfo returns the transportation map of the named
// attraction. Missing attractions yield an empty map.
func (s *Store) TransportationInfo(ctx context.Context, name string) (map[string]string, error) {
	a, err := s.ByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return map[string]string{}, nil
	}
	return a.Transportation, nil
}

// BasicInfo returns the basic-info projection of the named attraction, or
// nil when no such record exists. Absence is not an error.
func (s *Store) BasicInfo(ctx context.Context, name string) (*BasicInfo, error) {
	a, err := s.ByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}
	info := a.Basic()
	return &info, nil
}
