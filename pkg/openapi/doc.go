// Package openapi exposes the loader and parser contracts used to build
// schema-driven fieldsets. Implementations live under internal/openapi so the
// kin-openapi dependency stays hidden from consumers.
package openapi
