// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Each model has a TableName, a ToDomain conversion and a FromDomain constructor.
// Unique indexes mirror the natural keys enforced by the application layer.
//
// Structure:
// - base.go: BaseModel (id and timestamps)
// - realestate.go: AgentModel, ClientModel, LotModel, SaleModel
package models
