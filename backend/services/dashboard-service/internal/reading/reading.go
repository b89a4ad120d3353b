// Package reading models the simulated air quality sensor fields and
// produces Reading Sets by independent uniform sampling.
package reading

import "fmt"

// Field identifies one sensor channel shown on the dashboard.
type Field int

const (
	Temperature Field = iota
	Pressure
	Humidity
	VOCs
	Altitude
	MQ7CO
	MQ135CO
	CO2
	Alcohol
	Toluene
	NH4
	Acetone

	fieldCount
)

// FieldCount is the number of fields in every Reading Set.
const FieldCount = int(fieldCount)

// Spec describes a field: display name, slot id, unit and inclusive range.
type Spec struct {
	Name string
	ID   string
	Unit string
	Min  float64
	Max  float64
}

var specs = [FieldCount]Spec{
	Temperature: {Name: "Temperature", ID: "temperature", Unit: "°C", Min: 20, Max: 30},
	Pressure:    {Name: "Pressure", ID: "pressure", Unit: "hPa", Min: 990, Max: 1020},
	Humidity:    {Name: "Humidity", ID: "humidity", Unit: "%", Min: 40, Max: 60},
	VOCs:        {Name: "VOCs", ID: "vocs", Unit: "ppm", Min: 0.1, Max: 0.5},
	Altitude:    {Name: "Altitude", ID: "altitude", Unit: "m", Min: 100, Max: 150},
	MQ7CO:       {Name: "MQ7-CO", ID: "mq7_co", Unit: "ppm", Min: 0, Max: 10},
	MQ135CO:     {Name: "MQ135-CO", ID: "mq135_co", Unit: "ppm", Min: 0, Max: 10},
	CO2:         {Name: "CO2", ID: "co2", Unit: "ppm", Min: 300, Max: 600},
	Alcohol:     {Name: "Alcohol", ID: "alcohol", Unit: "ppm", Min: 0, Max: 0.5},
	Toluene:     {Name: "Toluene", ID: "toluene", Unit: "ppm", Min: 0, Max: 0.5},
	NH4:         {Name: "NH4", ID: "nh4", Unit: "ppm", Min: 0, Max: 0.5},
	Acetone:     {Name: "Acetone", ID: "acetone", Unit: "ppm", Min: 0, Max: 0.5},
}

// Fields returns every field in display order.
func Fields() []Field {
	out := make([]Field, FieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// Spec returns the static description of the field.
func (f Field) Spec() Spec {
	return specs[f]
}

func (f Field) String() string {
	if f < 0 || int(f) >= FieldCount {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return specs[f].Name
}

// Label is the card title, e.g. "Temperature (°C)".
func (s Spec) Label() string {
	return fmt.Sprintf("%s (%s)", s.Name, s.Unit)
}

// Contains reports whether v lies in the closed interval [Min, Max].
func (s Spec) Contains(v float64) bool {
	return v >= s.Min && v <= s.Max
}

// Set is one complete sample of every field, indexed by Field.
type Set [FieldCount]float64

// Get returns the value of f.
func (s Set) Get(f Field) float64 {
	return s[f]
}

// ByName returns the set keyed by field display name.
func (s Set) ByName() map[string]float64 {
	out := make(map[string]float64, FieldCount)
	for i, v := range s {
		out[specs[i].Name] = v
	}
	return out
}
