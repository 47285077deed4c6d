// Package store persists Tokyo attraction records in a sqlite table and
// answers the read queries the planning tools expose.
package store

import (
	"encoding/json"
	"strings"
)

// Attraction is one record of the attractions table. Categories and
// NearbyAttractions are comma-joined in the table; Transportation is stored
// as a JSON object column.
type Attraction struct {
	Name                string            `json:"name"`
	City                string            `json:"city"`
	Ward                string            `json:"ward"`
	Description         string            `json:"description"`
	Address             string            `json:"address"`
	Latitude            float64           `json:"latitude"`
	Longitude           float64           `json:"longitude"`
	TicketPrice         string            `json:"ticket_price"`
	OpeningHours        string            `json:"opening_hours"`
	RecommendedDuration string            `json:"recommended_duration"`
	Categories          []string          `json:"categories"`
	Transportation      map[string]string `json:"transportation"`
	NearbyAttractions   []string          `json:"nearby_attractions"`
	Website             string            `json:"website"`
	Phone               string            `json:"phone"`
	LastUpdated         string            `json:"last_updated"`
}

// BasicInfo is the reduced projection returned by the get_basic_info tool.
type BasicInfo struct {
	Name                string `json:"name"`
	Description         string `json:"description"`
	Address             string `json:"address"`
	TicketPrice         string `json:"ticket_price"`
	OpeningHours        string `json:"opening_hours"`
	RecommendedDuration string `json:"recommended_duration"`
}

// Basic returns the attraction's basic-info projection.
func (a *Attraction) Basic() BasicInfo {
	return BasicInfo{
		Name:                a.Name,
		Description:         a.Description,
		Address:             a.Address,
		TicketPrice:         a.TicketPrice,
		OpeningHours:        a.OpeningHours,
		RecommendedDuration: a.RecommendedDuration,
	}
}

// joinList encodes a string slice into the comma-joined column format.
func joinList(items []string) string {
	return strings.Join(items, ",")
}

// splitList decodes the comma-joined column format. An empty column maps
// to an empty slice, never nil, so JSON renders [] instead of null.
func splitList(column string) []string {
	if column == "" {
		return []string{}
	}
	return strings.Split(column, ",")
}

// encodeTransport serializes the transportation map for storage.
func encodeTransport(m map[string]string) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeTransport parses the transportation column. Malformed or empty
// columns decode to an empty map rather than an error, matching the
// forgiving read path the tools rely on.
func decodeTransport(column string) map[string]string {
	if column == "" {
		return map[string]string{}
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(column), &m); err != nil || m == nil {
		return map[string]string{}
	}
	return m
}
