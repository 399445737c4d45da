// Package models defines the core domain models for gpacalc.
//
// # Models
//
//   - Course: one entry of the course list (name, grade points, credit hours)
//   - Field: the editable attributes of a Course
//
// Grade points and credit hours are kept as the raw text the user typed.
// They are parsed only when a GPA is calculated, so a half-typed value such
// as "3." never blocks editing.
//
// # Design Principles
//
//  1. **Session scoped**: course ids are unique within one form session and are
//     never persisted.
//  2. **Plain values**: models carry no behaviour beyond field access; the list
//     manager and the calculator own all rules.
package models
