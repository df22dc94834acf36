// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/todo, domain/label).
// This root package holds sentinel errors, typed error kinds, and the
// validation messages shared by every entity.
package domain
