// README: Gazetteer of known cities and the distance result returned to the fare pipeline.
package location

import "taxifare/internal/types"

type City struct {
	Name  string      `json:"name"`
	Point types.Point `json:"point"`
}

// Gazetteer is the fixed list of resolvable cities. Order matters: the
// first match in declaration order wins.
var Gazetteer = []City{
	{Name: "Chennai", Point: types.Point{Lat: 13.0827, Lng: 80.2707}},
	{Name: "Tiruvannamalai", Point: types.Point{Lat: 12.2253, Lng: 79.0747}},
	{Name: "Vellore", Point: types.Point{Lat: 12.9165, Lng: 79.1325}},
	{Name: "Bangalore", Point: types.Point{Lat: 12.9716, Lng: 77.5946}},
	{Name: "Pondicherry", Point: types.Point{Lat: 11.9416, Lng: 79.8083}},
	{Name: "Villupuram", Point: types.Point{Lat: 11.9401, Lng: 79.4861}},
	{Name: "Kanchipuram", Point: types.Point{Lat: 12.8342, Lng: 79.7036}},
	{Name: "Chengalpattu", Point: types.Point{Lat: 12.6921, Lng: 79.9766}},
	{Name: "Tindivanam", Point: types.Point{Lat: 12.2340, Lng: 79.6550}},
	{Name: "Gingee", Point: types.Point{Lat: 12.2530, Lng: 79.4170}},
	{Name: "Arani", Point: types.Point{Lat: 12.6680, Lng: 79.2840}},
	{Name: "Polur", Point: types.Point{Lat: 12.5120, Lng: 79.1250}},
	{Name: "Krishnagiri", Point: types.Point{Lat: 12.5186, Lng: 78.2137}},
	{Name: "Hosur", Point: types.Point{Lat: 12.7409, Lng: 77.8253}},
	{Name: "Salem", Point: types.Point{Lat: 11.6643, Lng: 78.1460}},
	{Name: "Cuddalore", Point: types.Point{Lat: 11.7480, Lng: 79.7714}},
	{Name: "Kallakurichi", Point: types.Point{Lat: 11.7383, Lng: 78.9639}},
	{Name: "Trichy", Point: types.Point{Lat: 10.7905, Lng: 78.7047}},
	{Name: "Thanjavur", Point: types.Point{Lat: 10.7870, Lng: 79.1378}},
	{Name: "Madurai", Point: types.Point{Lat: 9.9252, Lng: 78.1198}},
	{Name: "Coimbatore", Point: types.Point{Lat: 11.0168, Lng: 76.9558}},
	{Name: "Tirupati", Point: types.Point{Lat: 13.6288, Lng: 79.4192}},
}

type DistanceSource string

const (
	SourceRouting   DistanceSource = "routing"
	SourceCache     DistanceSource = "cache"
	SourceHaversine DistanceSource = "haversine"
	SourceRandom    DistanceSource = "random"
)

// Distance is a one-leg driving distance. LowConfidence is set when at least
// one endpoint was outside the gazetteer and the kilometres are a placeholder.
type Distance struct {
	Km            float64        `json:"km"`
	Source        DistanceSource `json:"source"`
	LowConfidence bool           `json:"low_confidence"`
}
