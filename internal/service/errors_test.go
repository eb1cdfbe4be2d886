package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	nf := notFound("teacher %d not found", 7)
	cf := conflict("slot overlaps with slot %d", 3)
	vl := invalid("invalid time %q", "25:00")

	assert.True(t, IsNotFound(nf))
	assert.False(t, IsNotFound(cf))
	assert.True(t, IsConflict(cf))
	assert.False(t, IsConflict(vl))
	assert.True(t, IsValidation(vl))
	assert.False(t, IsValidation(nf))

	assert.Equal(t, "teacher 7 not found", nf.Error())
}

func TestErrorTaxonomyWrapped(t *testing.T) {
	wrapped := fmt.Errorf("create slot: %w", conflict("overlap"))
	assert.True(t, IsConflict(wrapped))
	assert.False(t, IsConflict(errors.New("plain")))
}
