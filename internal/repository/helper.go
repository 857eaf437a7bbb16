package repository

import "gorm.io/gorm/clause"

// onConflictDoNothing is the insert-ignore clause backing every
// find-or-create in this package. Uniqueness lives in the database index,
// not in a read-then-insert sequence.
func onConflictDoNothing() clause.OnConflict {
	return clause.OnConflict{DoNothing: true}
}
