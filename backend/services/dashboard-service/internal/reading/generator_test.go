package reading

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

type countingSource struct {
	calls int
}

func (c *countingSource) Float64() float64 {
	c.calls++
	return 0.5
}

func TestGenerateStaysInRange(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewPCG(1, 2)))

	for i := 0; i < 1000; i++ {
		set := gen.Generate()
		for _, f := range Fields() {
			spec := f.Spec()
			require.Truef(t, spec.Contains(set.Get(f)), "%s=%v outside [%v, %v]", f, set.Get(f), spec.Min, spec.Max)
		}
	}
}

func TestGenerateCoversEveryFieldOnce(t *testing.T) {
	src := &countingSource{}
	set := NewGenerator(src).Generate()

	require.Equal(t, FieldCount, src.calls)
	byName := set.ByName()
	require.Len(t, byName, 12)
	for _, name := range []string{
		"Temperature", "Pressure", "Humidity", "VOCs", "Altitude", "MQ7-CO",
		"MQ135-CO", "CO2", "Alcohol", "Toluene", "NH4", "Acetone",
	} {
		require.Contains(t, byName, name)
	}
}

func TestGenerateBoundaries(t *testing.T) {
	low := NewGenerator(fixedSource(0)).Generate()
	high := NewGenerator(fixedSource(1)).Generate()

	for _, f := range Fields() {
		spec := f.Spec()
		require.Equal(t, spec.Min, low.Get(f), f.String())
		require.Equal(t, spec.Max, high.Get(f), f.String())
	}
	require.Equal(t, 20.0, low.Get(Temperature))
	require.Equal(t, 30.0, high.Get(Temperature))
}

func TestGenerateIsIndependentOfPreviousCall(t *testing.T) {
	seq := []float64{0.1, 0.9}
	gen := NewGenerator(&scriptedSource{values: seq})

	first := gen.Generate()
	second := gen.Generate()

	// Every draw maps straight to its own range; the prior value plays no part.
	require.Equal(t, sample(Temperature.Spec(), 0.1), first.Get(Temperature))
	require.Equal(t, sample(Temperature.Spec(), 0.9), second.Get(Temperature))
}

func TestNewGeneratorDefaultSource(t *testing.T) {
	set := NewGenerator(nil).Generate()
	require.True(t, Humidity.Spec().Contains(set.Get(Humidity)))
}

func TestLabels(t *testing.T) {
	require.Equal(t, "Temperature (°C)", Temperature.Spec().Label())
	require.Equal(t, "MQ135-CO (ppm)", MQ135CO.Spec().Label())
	require.Equal(t, "Field(42)", Field(42).String())
}

// scriptedSource returns values[0] for the first Set, values[1] for the next,
// and so on; every field of a Set receives the same draw.
type scriptedSource struct {
	values []float64
	calls  int
}

func (s *scriptedSource) Float64() float64 {
	v := s.values[(s.calls/FieldCount)%len(s.values)]
	s.calls++
	return v
}
