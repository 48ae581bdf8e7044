package customers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func details(name, vehicle string) Details {
	return Details{
		Name:          name,
		ContactInfo:   name + "@example.com",
		VehicleNumber: vehicle,
		VehicleModel:  "Corolla",
	}
}

func TestRegistry_IDsSharedAcrossPartitions(t *testing.T) {
	r := NewRegistry()
	a := r.Register(details("Ann", "A1"))
	b := r.AddWalkIn(details("Ben", "B1"))
	c := r.Register(details("Cat", "C1"))

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.Equal(t, 3, c.ID)
	assert.True(t, a.Registered)
	assert.False(t, b.Registered)
	assert.Len(t, r.Registered(), 2)
	assert.Len(t, r.Unregistered(), 1)
}

func TestRegistry_FindByID(t *testing.T) {
	r := NewRegistry()
	r.Register(details("Ann", "A1"))
	walkIn := r.AddWalkIn(details("Ben", "B1"))

	got, ok := r.FindByID(walkIn.ID)
	require.True(t, ok)
	assert.Same(t, walkIn, got)

	_, ok = r.FindByID(99)
	assert.False(t, ok)
}

func TestRegistry_Upgrade(t *testing.T) {
	r := NewRegistry()
	r.AddWalkIn(details("Ann", "A1"))
	ben := r.AddWalkIn(details("Ben", "B1"))

	up, err := r.Upgrade(2)
	require.NoError(t, err)
	assert.Same(t, ben, up)
	assert.True(t, up.Registered)
	assert.Equal(t, 2, up.ID)
	assert.Equal(t, "Ben", up.Name)
	assert.Equal(t, "B1", up.VehicleNumber)
	assert.Equal(t, "Corolla", up.VehicleModel)

	assert.Equal(t, []*Customer{up}, r.Registered())
	for _, c := range r.Unregistered() {
		assert.NotEqual(t, up.ID, c.ID)
	}
	assert.Len(t, r.Unregistered(), 1)

	found, ok := r.FindByID(2)
	require.True(t, ok)
	assert.True(t, found.Registered)
}

func TestRegistry_UpgradeErrors(t *testing.T) {
	r := NewRegistry()
	_, err := r.Upgrade(1)
	assert.ErrorIs(t, err, ErrNoUnregistered)

	r.AddWalkIn(details("Ann", "A1"))
	for _, pos := range []int{0, 2, -3} {
		_, err := r.Upgrade(pos)
		assert.ErrorIs(t, err, ErrInvalidPosition, "pos %d", pos)
	}
	assert.Len(t, r.Unregistered(), 1)
	assert.Empty(t, r.Registered())
}
