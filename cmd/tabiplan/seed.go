package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkobayashi/tabiplan/internal/store"
)

// seedAttractions is the starter dataset written by the -init flag.
var seedAttractions = []store.Attraction{
	{
		Name:                "Sensoji Temple",
		City:                "Tokyo",
		Ward:                "Taito",
		Description:         "Tokyo's oldest temple, entered through the iconic Kaminarimon gate",
		Address:             "2-3-1 Asakusa, Taito City, Tokyo",
		Latitude:            35.714702,
		Longitude:           139.796708,
		TicketPrice:         "Free",
		OpeningHours:        "Open all day",
		RecommendedDuration: "1-2 hours",
		Categories:          []string{"temple", "culture", "history"},
		Transportation: map[string]string{
			"metro": "5 min walk from Asakusa Station (Ginza line)",
			"JR":    "10 min walk from Ueno Station (Yamanote line)",
		},
		NearbyAttractions: []string{"Asakusa Culture Tourist Information Center", "Kaminarimon"},
		Website:           "https://www.senso-ji.jp/",
		Phone:             "+81-3-3842-0181",
	},
	{
		Name:                "Tokyo Tower",
		City:                "Tokyo",
		Ward:                "Minato",
		Description:         "One of Tokyo's landmark structures, a 333 meter lattice tower",
		Address:             "4-2-8 Shibakoen, Minato City, Tokyo",
		Latitude:            35.658581,
		Longitude:           139.745433,
		TicketPrice:         "Adults 1200 yen",
		OpeningHours:        "9:00-23:00",
		RecommendedDuration: "2-3 hours",
		Categories:          []string{"observation deck", "landmark", "modern architecture"},
		Transportation: map[string]string{
			"metro": "5 min walk from Akabanebashi Station (Oedo line)",
			"JR":    "15 min walk from Hamamatsucho Station (Yamanote line)",
		},
		NearbyAttractions: []string{"Shiba Park", "Zojoji Temple"},
		Website:           "https://www.tokyotower.co.jp/",
		Phone:             "+81-3-3433-5111",
	},
	{
		Name:                "Meiji Shrine",
		City:                "Tokyo",
		Ward:                "Shibuya",
		Description:         "Shinto shrine dedicated to Emperor Meiji, set in a forest in the city center",
		Address:             "1-1 Yoyogikamizonocho, Shibuya City, Tokyo",
		Latitude:            35.676391,
		Longitude:           139.699309,
		TicketPrice:         "Free",
		OpeningHours:        "Open year round",
		RecommendedDuration: "1-2 hours",
		Categories:          []string{"shrine", "nature", "culture"},
		Transportation: map[string]string{
			"metro": "5 min walk from Meiji-jingumae Station (Chiyoda line)",
			"JR":    "10 min walk from Harajuku Station (Yamanote line)",
		},
		NearbyAttractions: []string{"Yoyogi Park", "Takeshita Street"},
		Website:           "https://www.meijijingu.or.jp/",
		Phone:             "+81-3-3371-1407",
	},
	{
		Name:                "Shibuya Crossing",
		City:                "Tokyo",
		Ward:                "Shibuya",
		Description:         "One of the busiest pedestrian crossings in the world",
		Address:             "1-3-20 Shibuya, Shibuya City, Tokyo",
		Latitude:            35.659934,
		Longitude:           139.700532,
		TicketPrice:         "Free",
		OpeningHours:        "Open all day",
		RecommendedDuration: "1 hour",
		Categories:          []string{"landmark", "modern", "shopping"},
		Transportation: map[string]string{
			"metro": "Shibuya Station (Ginza, Hanzomon and Fukutoshin lines)",
			"JR":    "Shibuya Station (Yamanote line)",
		},
		NearbyAttractions: []string{"Shibuya Sky", "Shibuya 109"},
		Website:           "https://www.shibuya.city.tokyo.jp/",
	},
	{
		Name:                "Shinjuku Gyoen",
		City:                "Tokyo",
		Ward:                "Shinjuku",
		Description:         "Garden blending Japanese, English and French landscape styles",
		Address:             "11 Naitomachi, Shinjuku City, Tokyo",
		Latitude:            35.681093,
		Longitude:           139.728639,
		TicketPrice:         "Adults 500 yen",
		OpeningHours:        "9:00-16:30",
		RecommendedDuration: "2-3 hours",
		Categories:          []string{"garden", "nature", "leisure"},
		Transportation: map[string]string{
			"metro": "Shinjuku-gyoemmae Station (Marunouchi line)",
			"JR":    "5 min walk from Shinjuku Station south exit",
		},
		NearbyAttractions: []string{"Shinjuku Central Park", "Meiji Jingu Gaien"},
		Website:           "https://www.env.go.jp/garden/shinjukugyoen/",
		Phone:             "+81-3-3343-5555",
	},
}

// seedDatabase loads the starter dataset, skipping records that already
// exist so -init is safe to rerun.
func seedDatabase(ctx context.Context, s *store.Store) (int, error) {
	added := 0
	for _, a := range seedAttractions {
		err := s.Add(ctx, a)
		if errors.Is(err, store.ErrExists) {
			continue
		}
		if err != nil {
			return added, fmt.Errorf("failed to seed %s: %w", a.Name, err)
		}
		added++
	}
	return added, nil
}
