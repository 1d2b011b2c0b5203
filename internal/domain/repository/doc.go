// Package repository define las interfaces de repositorio de dominio.
//
// Estas interfaces representan contratos de negocio, independientes del
// almacenamiento subyacente. La implementación concreta (PostgreSQL) vive
// en internal/store/pg.
//
// Convenciones:
//   - Context siempre es el primer parámetro
//   - Errores de dominio están en errors.go
//   - Las tablas y columnas que participan en joins many-to-many son un
//     conjunto fijo conocido en compile time, nunca derivado del request
package repository
