package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestium/gestium-api/internal/domain/entity"
	"github.com/gestium/gestium-api/internal/domain/repository"
)

var _ repository.ArchivoRepository = (*ArchivoRepo)(nil)

// ArchivoRepo implementación de ArchivoRepository (metadatos y versiones).
type ArchivoRepo struct {
	q Querier
}

// NewArchivoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArchivoRepository(q Querier) *ArchivoRepo {
	return &ArchivoRepo{q: q}
}

// Create persiste los metadatos de un archivo.
func (r *ArchivoRepo) Create(a *entity.Archivo) error {
	query := `
		INSERT INTO archivos (id, empresa_id, nombre, mime_type, tamano, entidad_tipo, entidad_id,
			activo, descargas, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.EmpresaID, a.Nombre, a.MimeType, a.Tamano,
		nullIfEmpty(a.EntidadTipo), nullIfEmpty(a.EntidadID),
		a.Activo, a.Descargas, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert archivo: %w", err)
	}
	return nil
}

// GetByID obtiene un archivo por ID.
func (r *ArchivoRepo) GetByID(id string) (*entity.Archivo, error) {
	query := `
		SELECT id, empresa_id, nombre, mime_type, tamano, COALESCE(entidad_tipo, ''),
			COALESCE(entidad_id, ''), activo, descargas, created_at, updated_at
		FROM archivos WHERE id = $1`
	var a entity.Archivo
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.EmpresaID, &a.Nombre, &a.MimeType, &a.Tamano, &a.EntidadTipo, &a.EntidadID,
		&a.Activo, &a.Descargas, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get archivo: %w", err)
	}
	return &a, nil
}

// ListByEmpresa lista archivos de la empresa con paginación.
func (r *ArchivoRepo) ListByEmpresa(empresaID string, soloActivos bool, limit, offset int) ([]*entity.Archivo, error) {
	query := `
		SELECT id, empresa_id, nombre, mime_type, tamano, COALESCE(entidad_tipo, ''),
			COALESCE(entidad_id, ''), activo, descargas, created_at, updated_at
		FROM archivos WHERE empresa_id = $1 AND ($2 = false OR activo)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, empresaID, soloActivos, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list archivos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Archivo
	for rows.Next() {
		var a entity.Archivo
		if err := rows.Scan(&a.ID, &a.EmpresaID, &a.Nombre, &a.MimeType, &a.Tamano,
			&a.EntidadTipo, &a.EntidadID, &a.Activo, &a.Descargas, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan archivo: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// CountByEmpresa devuelve el total de archivos de la empresa.
func (r *ArchivoRepo) CountByEmpresa(empresaID string, soloActivos bool) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM archivos WHERE empresa_id = $1 AND ($2 = false OR activo)`,
		empresaID, soloActivos).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count archivos: %w", err)
	}
	return total, nil
}

// Update actualiza los metadatos del archivo (nombre, tamaño, baja lógica).
func (r *ArchivoRepo) Update(a *entity.Archivo) error {
	query := `
		UPDATE archivos SET nombre = $2, tamano = $3, activo = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Nombre, a.Tamano, a.Activo, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update archivo: %w", err)
	}
	return nil
}

// IncrementarDescargas suma uno al contador de descargas.
func (r *ArchivoRepo) IncrementarDescargas(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE archivos SET descargas = descargas + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("incrementar descargas: %w", err)
	}
	return nil
}

// CreateVersion persiste una versión del archivo.
func (r *ArchivoRepo) CreateVersion(v *entity.ArchivoVersion) error {
	query := `
		INSERT INTO archivo_versiones (id, archivo_id, numero, nombre, tamano, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.ArchivoID, v.Numero, v.Nombre, v.Tamano, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert archivo version: %w", err)
	}
	return nil
}

// ListVersiones devuelve las versiones del archivo, más recientes primero.
func (r *ArchivoRepo) ListVersiones(archivoID string) ([]*entity.ArchivoVersion, error) {
	query := `
		SELECT id, archivo_id, numero, nombre, tamano, created_at
		FROM archivo_versiones WHERE archivo_id = $1 ORDER BY numero DESC`
	rows, err := r.q.Query(context.Background(), query, archivoID)
	if err != nil {
		return nil, fmt.Errorf("list archivo versiones: %w", err)
	}
	defer rows.Close()
	var list []*entity.ArchivoVersion
	for rows.Next() {
		var v entity.ArchivoVersion
		if err := rows.Scan(&v.ID, &v.ArchivoID, &v.Numero, &v.Nombre, &v.Tamano, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan archivo version: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// UltimaVersion devuelve el número de la versión más alta (0 si no hay).
func (r *ArchivoRepo) UltimaVersion(archivoID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(MAX(numero), 0) FROM archivo_versiones WHERE archivo_id = $1`,
		archivoID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("ultima version: %w", err)
	}
	return n, nil
}
