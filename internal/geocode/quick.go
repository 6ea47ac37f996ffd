package geocode

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

type knownPlace struct {
	key    string
	coords domain.Coordinates
}

// knownPlaces is searched in order; the first substring hit wins.
var knownPlaces = []knownPlace{
	{"рим", domain.Coordinates{Latitude: 41.9028, Longitude: 12.4964, DisplayName: "Рим, Италия"}},
	{"париж", domain.Coordinates{Latitude: 48.8566, Longitude: 2.3522, DisplayName: "Париж, Франция"}},
	{"лондон", domain.Coordinates{Latitude: 51.5074, Longitude: -0.1278, DisplayName: "Лондон, Великобритания"}},
	{"берлин", domain.Coordinates{Latitude: 52.52, Longitude: 13.405, DisplayName: "Берлин, Германия"}},
	{"прага", domain.Coordinates{Latitude: 50.0755, Longitude: 14.4378, DisplayName: "Прага, Чехия"}},
	{"москва", domain.Coordinates{Latitude: 55.7558, Longitude: 37.6173, DisplayName: "Москва, Россия"}},
	{"нью-йорк", domain.Coordinates{Latitude: 40.7128, Longitude: -74.006, DisplayName: "Нью-Йорк, США"}},
	{"токио", domain.Coordinates{Latitude: 35.6762, Longitude: 139.6503, DisplayName: "Токио, Япония"}},
	{"италия", domain.Coordinates{Latitude: 41.8719, Longitude: 12.5674, DisplayName: "Италия"}},
	{"франция", domain.Coordinates{Latitude: 46.6034, Longitude: 1.8883, DisplayName: "Франция"}},
	{"германия", domain.Coordinates{Latitude: 51.1657, Longitude: 10.4515, DisplayName: "Германия"}},
	{"испания", domain.Coordinates{Latitude: 40.4637, Longitude: -3.7492, DisplayName: "Испания"}},
}

var knownPlaceIndex = func() map[string]domain.Coordinates {
	m := make(map[string]domain.Coordinates, len(knownPlaces))
	for _, p := range knownPlaces {
		m[p.key] = p.coords
	}
	return m
}()

// QuickResolve looks place up in the static table without touching the
// network or the cache. The case-folded input is matched exactly first, then
// against every key as a substring in table order.
func QuickResolve(place string) (domain.Coordinates, bool) {
	folded := cases.Fold().String(place)

	if c, ok := knownPlaceIndex[folded]; ok {
		return c, true
	}
	for _, p := range knownPlaces {
		if strings.Contains(folded, p.key) {
			return p.coords, true
		}
	}
	return domain.Coordinates{}, false
}
