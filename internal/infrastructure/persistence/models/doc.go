// Package models holds the GORM rows behind the database snapshot store.
//
// A meeting is one row: its full state as a JSON document plus the scalar
// columns used for ordering and ad hoc queries. Participants and
// notifications are plain rows.
package models
