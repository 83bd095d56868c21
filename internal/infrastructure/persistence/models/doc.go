// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Key Principles:
//  1. Domain entities carry no GORM tags
//  2. Persistence models contain all GORM annotations and table mappings
//  3. Mappers (ToDomain / XModelFromDomain) convert between the two
//  4. Embedded sub-documents (media links, pricing options, request details)
//     are JSONB columns backed by the domain types' Valuer/Scanner
//
// Structure:
// - base.go: BaseModel, AggregateModel and the AutoMigrate list
// - identity.go: users
// - recording.go: recordings
// - audio_request.go: audio requests
// - finance.go: payments
// - messaging.go: messages and simple paid requests
package models
