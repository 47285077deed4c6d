// Package tools wires the attraction store's read queries into the engine
// tool registry the planner dispatches against.
package tools

import (
	"context"

	"github.com/mkobayashi/tabiplan/internal/engine"
	"github.com/mkobayashi/tabiplan/internal/store"
)

// Reader is the slice of the store the tools need. All tools are
// read-only; writes never go through the planning loop.
type Reader interface {
	All(ctx context.Context) ([]store.Attraction, error)
	ByName(ctx context.Context, name string) (*store.Attraction, error)
	Search(ctx context.Context, keyword, category, ward string) ([]store.Attraction, error)
	ByCategory(ctx context.Context, category string) ([]store.Attraction, error)
	ByWard(ctx context.Context, ward string) ([]store.Attraction, error)
	TransportationInfo(ctx context.Context, name string) (map[string]string, error)
	BasicInfo(ctx context.Context, name string) (*store.BasicInfo, error)
}

// NewRegistry builds the fixed tool set the planner exposes to the model.
func NewRegistry(r Reader) engine.ToolRegistry {
	reg := engine.ToolRegistry{}
	for _, t := range []engine.Tool{
		{
			Name:        "get_all_attractions",
			Description: "list every attraction in the database",
			Strategy:    engine.ArgNone,
			Fn: func(ctx context.Context, _ map[string]string) (any, error) {
				return r.All(ctx)
			},
		},
		{
			Name:        "get_attraction_by_name",
			Description: "full record of one attraction, requires the attraction name",
			Param:       "name",
			Strategy:    engine.ArgString,
			Fn: func(ctx context.Context, args map[string]string) (any, error) {
				return r.ByName(ctx, args["name"])
			},
		},
		{
			Name:        "search_attractions",
			Description: "search attractions by keyword, category and/or ward",
			Strategy:    engine.ArgKeywords,
			Fn: func(ctx context.Context, args map[string]string) (any, error) {
				return r.Search(ctx, args["keyword"], args["category"], args["ward"])
			},
		},
		{
			Name:        "get_attractions_by_category",
			Description: "attractions tagged with a category, requires the category name",
			Param:       "category",
			Strategy:    engine.ArgString,
			Fn: func(ctx context.Context, args map[string]string) (any, error) {
				return r.ByCategory(ctx, args["category"])
			},
		},
		{
			Name:        "get_attractions_by_ward",
			Description: "attractions located in a ward, requires the ward name",
			Param:       "ward",
			Strategy:    engine.ArgString,
			Fn: func(ctx context.Context, args map[string]string) (any, error) {
				return r.ByWard(ctx, args["ward"])
			},
		},
		{
			Name:        "get_transportation_info",
			Description: "transport options for an attraction, requires the attraction name",
			Param:       "name",
			Strategy:    engine.ArgString,
			Fn: func(ctx context.Context, args map[string]string) (any, error) {
				return r.TransportationInfo(ctx, args["name"])
			},
		},
		{
			Name:        "get_basic_info",
			Description: "name, description, address, price, hours and duration of an attraction",
			Param:       "name",
			Strategy:    engine.ArgString,
			Fn: func(ctx context.Context, args map[string]string) (any, error) {
				info, err := r.BasicInfo(ctx, args["name"])
				if err != nil {
					return nil, err
				}
				// Missing attractions serialize as an empty object
				// rather than null or a zero record.
				if info == nil {
					return map[string]string{}, nil
				}
				return info, nil
			},
		},
	} {
		reg[t.Name] = t
	}
	return reg
}
