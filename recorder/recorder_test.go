package recorder

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipeheat/calculator"
)

func TestCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.csv")
	c := NewCSV(path)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, c.Record(calculator.Report{Pipe: "p", SimTime: float64(i), FluidOutletTemp: 40 + float64(i)}))
		}(i)
	}
	wg.Wait()
	require.Equal(t, 8, c.Len())
	require.NoError(t, c.Close())

	rows, err := Read(path)
	require.NoError(t, err)
	require.Len(t, rows, 8)
	seen := make(map[float64]float64)
	for _, r := range rows {
		assert.Equal(t, "p", r.Pipe)
		seen[r.SimTime] = r.FluidOutletTemp
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, 40+float64(i), seen[float64(i)])
	}
}

func TestCSV_KeepsFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soil.csv")
	c := NewCSV(path)
	require.NoError(t, c.Record(calculator.Report{Pipe: "buried", SoilIterations: 17, SoilConverged: true}))
	require.NoError(t, c.Close())

	rows, err := Read(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 17, rows[0].SoilIterations)
	assert.True(t, rows[0].SoilConverged)
}

func TestRead_Missing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "none.csv"))
	assert.Error(t, err)
}
