package filter_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/filter"
)

func TestSync_UpdateWritesURL(t *testing.T) {
	t.Parallel()

	loc := filter.NewMemoryLocation("?search=tea&page=2")
	s := filter.NewSync(loc)
	defer s.Close()

	assert.Equal(t, "tea", s.State().Search)
	assert.Equal(t, 2, s.State().Page)

	st := s.SetPage(3)
	assert.Equal(t, 3, st.Page)
	assert.Equal(t, "tea", st.Search)
	assert.Equal(t, "page=3&search=tea", loc.Query())

	st = s.Update(func(st filter.State) filter.State { return st.WithCategory("green") })
	assert.Equal(t, 0, st.Page)
	assert.Equal(t, "category=green&search=tea", loc.Query())
	assert.Equal(t, filter.Decode(loc.Query()), s.State())

	st = s.Reset()
	assert.True(t, st.IsDefault())
	assert.Empty(t, loc.Query())
}

func TestSync_UpdateResetsPageOnFilterChange(t *testing.T) {
	t.Parallel()

	loc := filter.NewMemoryLocation("?search=tea&page=3")
	s := filter.NewSync(loc)
	defer s.Close()

	st := s.Update(func(st filter.State) filter.State {
		st.Category = "green"
		return st
	})
	assert.Equal(t, 0, st.Page)
	assert.Equal(t, "category=green&search=tea", loc.Query())

	st = s.Update(func(st filter.State) filter.State {
		st.Page = 4
		return st
	})
	assert.Equal(t, 4, st.Page)

	st = s.Update(func(st filter.State) filter.State {
		st.Sort = filter.SortPrice
		st.Page = 4
		return st
	})
	assert.Equal(t, 0, st.Page, "sort change must reset the page even when the callback sets one")
	assert.Equal(t, "category=green&search=tea&sort=price", loc.Query())
}

func TestSync_FollowsHistory(t *testing.T) {
	t.Parallel()

	loc := filter.NewMemoryLocation("")
	s := filter.NewSync(loc)
	defer s.Close()

	s.Update(func(st filter.State) filter.State { return st.WithCategory("tea") })
	s.Update(func(st filter.State) filter.State { return st.WithSort(filter.SortPrice) })
	require.Equal(t, 3, loc.Len())

	require.True(t, loc.Back())
	assert.Equal(t, filter.SortName, s.State().Sort)
	assert.Equal(t, "tea", s.State().Category)

	require.True(t, loc.Back())
	assert.True(t, s.State().IsDefault())
	assert.False(t, loc.Back())

	require.True(t, loc.Forward())
	assert.Equal(t, "tea", s.State().Category)

	// A new entry drops forward history.
	s.SetPage(1)
	assert.False(t, loc.Forward())
	assert.Equal(t, 3, loc.Len())
}

func TestSync_ExternalNavigation(t *testing.T) {
	t.Parallel()

	loc := filter.NewMemoryLocation("")
	s := filter.NewSync(loc)
	defer s.Close()

	loc.Push("?category=books&minPrice=abc&page=x")
	st := s.State()
	assert.Equal(t, "books", st.Category)
	assert.Nil(t, st.MinPrice)
	assert.Zero(t, st.Page)

	loc.Replace("sort=popularity")
	assert.Equal(t, filter.SortPopularity, s.State().Sort)
	assert.Equal(t, 2, loc.Len())
}

func TestSync_Subscribe(t *testing.T) {
	t.Parallel()

	loc := filter.NewMemoryLocation("category=tea&page=1")
	s := filter.NewSync(loc)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := s.Subscribe(ctx)

	s.SetPage(2)
	s.Update(func(st filter.State) filter.State { return st.WithCategory("books") })
	loc.Back()

	// Pushing the current query again changes nothing.
	loc.Push(loc.Query())

	var changes []filter.Change
	for len(changes) < 3 {
		select {
		case msg := <-sub.Receive(ctx):
			changes = append(changes, msg.Data)
		case <-time.After(time.Second):
			t.Fatalf("timed out after %d changes", len(changes))
		}
	}

	assert.True(t, changes[0].PageOnly())
	assert.Equal(t, 2, changes[0].Current.Page)

	assert.False(t, changes[1].PageOnly())
	assert.Equal(t, "books", changes[1].Current.Category)
	assert.Zero(t, changes[1].Current.Page)

	assert.Equal(t, "tea", changes[2].Current.Category)
	assert.Equal(t, "category=tea&page=2", changes[2].Query)

	select {
	case msg := <-sub.Receive(ctx):
		t.Fatalf("unexpected change %+v", msg.Data)
	default:
	}
}

func TestSync_Close(t *testing.T) {
	t.Parallel()

	loc := filter.NewMemoryLocation("")
	s := filter.NewSync(loc)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	loc.Push("category=tea")
	assert.True(t, s.State().IsDefault())
}
