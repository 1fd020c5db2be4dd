package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	id := uuid.New()
	err := &NotFoundError{ResumeID: id}
	assert.Contains(t, err.Error(), id.String())
}

func TestUnknownSectionError(t *testing.T) {
	err := &UnknownSectionError{Section: "hobbies"}
	assert.Contains(t, err.Error(), "hobbies")
}

func TestChildTablesCoverEveryCollection(t *testing.T) {
	// One table per draft collection; bullets hang off their parents.
	assert.Len(t, childTables, 7)
}
