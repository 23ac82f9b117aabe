package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryForStatus(t *testing.T) {
	assert.Equal(t, CategoryHealthy, CategoryForStatus(StatusSafe))
	assert.Equal(t, CategoryJunk, CategoryForStatus(StatusUnsafe))
	assert.Equal(t, CategoryJunk, CategoryForStatus(StatusError))
	assert.Equal(t, CategoryJunk, CategoryForStatus(StatusUnknown))
	// exact match only; lowercase or substring variants are not safe
	assert.Equal(t, CategoryJunk, CategoryForStatus("aman"))
	assert.Equal(t, CategoryJunk, CategoryForStatus("Tidak Aman (Aman)"))
}
