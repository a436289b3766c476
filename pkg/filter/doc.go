// Package filter keeps product list criteria and the URL query string in
// sync.
//
// State is the canonical search, category, price range, sort and page
// selection. Encode writes only non-default fields, so the default state
// encodes to an empty query. Decode never fails: missing or malformed values
// fall back to their defaults. For every state s,
//
//	Decode(Encode(s)) == Normalize(s)
//
// The With* mutators return a modified copy; changing any filter or the sort
// order resets Page to 0, while WithPage leaves the filters alone.
//
// Sync derives State from a Location (a browser-like URL with history) and
// notifies subscribers on every URL change, whether it came from Update or
// from history navigation:
//
//	loc := filter.NewMemoryLocation("?category=tea")
//	fs := filter.NewSync(loc)
//	defer fs.Close()
//
//	fs.Update(func(s filter.State) filter.State { return s.WithSort(filter.SortPrice) })
//	loc.Query() // "category=tea&sort=price"
//	loc.Back()  // fs.State().Sort == filter.SortName again
package filter
