package repository

import "github.com/jhoicas/recibos-api/internal/domain/entity"

// ChangeRepository define el puerto de persistencia del libro de cambios.
// El libro es append-only: no hay Update ni Delete.
type ChangeRepository interface {
	Append(record *entity.ChangeRecord) error
	// List devuelve los cambios en orden de inserción; source vacío lista todo.
	List(source string) ([]*entity.ChangeRecord, error)
	// ListSources devuelve las etiquetas de procedencia distintas registradas.
	ListSources() ([]string, error)
}
