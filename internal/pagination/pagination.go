// Package pagination implements keyset (cursor) pagination over id-ordered
// queries. A cursor is the id of the last item the client saw; the next
// page starts strictly after it, so the cursor item is never re-returned
// and nothing is skipped regardless of rows inserted between requests.
package pagination

import (
	"gorm.io/gorm"
)

// Order is the traversal direction of a paginated listing.
type Order string

const (
	// Desc walks newest-first (descending id).
	Desc Order = "desc"
	// Asc walks oldest-first (ascending id).
	Asc Order = "asc"
)

// Page sizes are fixed per resource shape; clients cannot override them.
const (
	// UserPageSize applies to user-shaped listings: users, followers,
	// follows, likers.
	UserPageSize = 5
	// HusqPageSize applies to husq-shaped listings: feeds, timelines,
	// replies, liked husqs.
	HusqPageSize = 10
)

// Page describes one keyset window. A zero Cursor means the first page.
// Callers detect the last page by a result shorter than Size; no total
// count query is ever issued.
type Page struct {
	Size   int
	Cursor uint
	Order  Order
}

// Users returns the window for user-shaped listings, which keep insertion
// order (ascending id).
func Users(cursor uint) Page {
	return Page{Size: UserPageSize, Cursor: cursor, Order: Asc}
}

// Husqs returns the window for husq feeds and timelines, newest-first.
func Husqs(cursor uint) Page {
	return Page{Size: HusqPageSize, Cursor: cursor, Order: Desc}
}

// Replies returns the window for reply listings, which preserve
// conversational order (ascending id).
func Replies(cursor uint) Page {
	return Page{Size: HusqPageSize, Cursor: cursor, Order: Asc}
}

// Scope applies the window to a query keyed on the given id column. The
// cursor bound is exclusive in the traversal direction.
func (p Page) Scope(column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.Cursor != 0 {
			if p.Order == Asc {
				db = db.Where(column+" > ?", p.Cursor)
			} else {
				db = db.Where(column+" < ?", p.Cursor)
			}
		}
		dir := "DESC"
		if p.Order == Asc {
			dir = "ASC"
		}
		return db.Order(column + " " + dir).Limit(p.Size)
	}
}
