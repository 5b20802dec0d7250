package service

import (
	"context"
	"errors"
	"testing"

	"github.com/forgo/library/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexService_Counts(t *testing.T) {
	c := newMemCatalog()
	a := c.addAuthor("Jane", "Austen")
	c.addGenre("Fiction")
	b1 := c.addBook("Emma", a.ID)
	c.addBook("Persuasion", a.ID)
	c.addCopy(b1.ID, model.StatusAvailable)
	c.addCopy(b1.ID, model.StatusLoaned)
	c.addCopy(b1.ID, model.StatusAvailable)

	out, err := c.indexService().Index(context.Background())

	require.NoError(t, err)
	assert.Equal(t, ViewIndex, out.View)
	assert.Nil(t, out.Model["error"])
	assert.Equal(t, &IndexCounts{
		BookCount:                  2,
		BookInstanceCount:          3,
		BookInstanceAvailableCount: 2,
		AuthorCount:                1,
		GenreCount:                 1,
	}, out.Model["data"])
}

func TestIndexService_ErrorRenderedIntoDashboard(t *testing.T) {
	c := newMemCatalog()
	boom := errors.New("store down")
	c.readErr = boom

	out, err := c.indexService().Index(context.Background())

	require.NoError(t, err)
	assert.Equal(t, ViewIndex, out.View)
	assert.ErrorIs(t, out.Model["error"].(error), boom)
	assert.NotContains(t, out.Model, "data")
}
