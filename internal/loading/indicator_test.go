package loading

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndicator_StartStopIdempotent(t *testing.T) {
	ind := New()
	var flips []bool
	ind.OnChange(func(active bool) { flips = append(flips, active) })

	ind.Start()
	ind.Start()
	assert.True(t, ind.Active())

	ind.Stop()
	ind.Stop()
	assert.False(t, ind.Active())

	assert.Equal(t, []bool{true, false}, flips)
}

func TestIndicator_Concurrent(t *testing.T) {
	ind := New()
	var wg sync.WaitGroup
	for n := 0; n < 50; n++ {
		wg.Add(2)
		go func() { defer wg.Done(); ind.Start() }()
		go func() { defer wg.Done(); ind.Stop() }()
	}
	wg.Wait()

	ind.Stop()
	assert.False(t, ind.Active())
}
