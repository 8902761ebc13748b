// Package geo ranks shops by great-circle distance and prices delivery.
package geo

import (
	"math"
	"sort"
	"time"

	"github.com/drovo/drovo-service/internal/domain"
)

const (
	EarthRadiusKm   = 6371.0
	DefaultRadiusKm = 10.0
	FallbackLimit   = 6
)

type Point struct {
	Lat float64
	Lon float64
}

func (p Point) Valid() bool {
	return !math.IsNaN(p.Lat) && !math.IsNaN(p.Lon) &&
		p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Distance returns the haversine distance in kilometres.
func Distance(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

type tier struct {
	below  float64
	charge float64
}

var deliveryTiers = []tier{
	{1, 9},
	{2.5, 15},
	{4, 25},
	{6, 35},
}

const maxDeliveryCharge = 50

// DeliveryCharge prices delivery in rupees by distance.
func DeliveryCharge(distanceKm float64) float64 {
	for _, t := range deliveryTiers {
		if distanceKm < t.below {
			return t.charge
		}
	}
	return maxDeliveryCharge
}

// FindNearby returns active shops within radiusKm of origin, nearest first.
// With no origin it returns up to FallbackLimit active shops without distances.
// Shops with missing or unusable coordinates are skipped.
func FindNearby(origin *Point, radiusKm float64, candidates []*domain.Shop, now time.Time) []domain.ShopWithDistance {
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}

	results := make([]domain.ShopWithDistance, 0)
	if origin == nil {
		for _, shop := range candidates {
			if !shop.IsActive(now) {
				continue
			}
			results = append(results, domain.ShopWithDistance{Shop: shop})
			if len(results) == FallbackLimit {
				break
			}
		}
		return results
	}

	for _, shop := range candidates {
		if !shop.IsActive(now) {
			continue
		}
		p, ok := shopPoint(shop)
		if !ok {
			continue
		}
		d := Distance(*origin, p)
		if d > radiusKm {
			continue
		}
		results = append(results, domain.ShopWithDistance{Shop: shop, DistanceKm: &d})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return *results[i].DistanceKm < *results[j].DistanceKm
	})
	return results
}

func ShopPoint(shop *domain.Shop) (Point, bool) {
	return shopPoint(shop)
}

func shopPoint(shop *domain.Shop) (Point, bool) {
	if shop.Address.Latitude == nil || shop.Address.Longitude == nil {
		return Point{}, false
	}
	p := Point{Lat: *shop.Address.Latitude, Lon: *shop.Address.Longitude}
	if !p.Valid() {
		return Point{}, false
	}
	return p, true
}
