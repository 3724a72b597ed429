package church

import (
	"context"
	"math"
	"sort"
)

const (
	earthRadiusMiles = 3959
	searchLimit      = 10
)

type SearchQuery struct {
	Query     string
	ZipCode   string
	Latitude  *float64
	Longitude *float64
}

// Search returns publicly visible churches matching the query, ordered by
// great-circle distance from the caller's coordinates to the nearest campus.
// Churches with no campus coordinates sort last; ties break by name. The
// result set is capped at ten.
func (s *Service) Search(ctx context.Context, q SearchQuery) ([]SearchResult, error) {
	candidates, err := s.repo.SearchPublic(ctx, q.Query, q.ZipCode)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(candidates))
	for _, candidate := range candidates {
		result := SearchResult{Church: candidate.Church, Campuses: candidate.Campuses}
		if q.Latitude != nil && q.Longitude != nil {
			result.DistanceMiles = nearestCampusMiles(*q.Latitude, *q.Longitude, candidate.Campuses)
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		switch {
		case a.DistanceMiles != nil && b.DistanceMiles == nil:
			return true
		case a.DistanceMiles == nil && b.DistanceMiles != nil:
			return false
		case a.DistanceMiles != nil && b.DistanceMiles != nil && *a.DistanceMiles != *b.DistanceMiles:
			return *a.DistanceMiles < *b.DistanceMiles
		default:
			return a.Church.Name < b.Church.Name
		}
	})

	if len(results) > searchLimit {
		results = results[:searchLimit]
	}
	return results, nil
}

func nearestCampusMiles(lat, lng float64, campuses []Campus) *float64 {
	var nearest *float64
	for _, campus := range campuses {
		if campus.Latitude == nil || campus.Longitude == nil {
			continue
		}
		distance := haversineMiles(lat, lng, *campus.Latitude, *campus.Longitude)
		if nearest == nil || distance < *nearest {
			nearest = &distance
		}
	}
	return nearest
}

func haversineMiles(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
