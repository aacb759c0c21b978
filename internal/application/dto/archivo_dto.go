package dto

import "time"

// CreateArchivoRequest registra los metadatos de un archivo subido.
type CreateArchivoRequest struct {
	Nombre      string `json:"nombre"`
	MimeType    string `json:"mimeType"`
	Tamano      int64  `json:"tamano"`
	EntidadTipo string `json:"entidadTipo"`
	EntidadID   string `json:"entidadId"`
}

// ArchivoResponse representación de un archivo.
type ArchivoResponse struct {
	ID          string    `json:"id"`
	EmpresaID   string    `json:"empresaId"`
	Nombre      string    `json:"nombre"`
	MimeType    string    `json:"mimeType"`
	Tamano      int64     `json:"tamano"`
	EntidadTipo string    `json:"entidadTipo,omitempty"`
	EntidadID   string    `json:"entidadId,omitempty"`
	Activo      bool      `json:"activo"`
	Descargas   int64     `json:"descargas"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ArchivoListResponse listado paginado de archivos.
type ArchivoListResponse struct {
	Data []ArchivoResponse `json:"data"`
	Meta PageMeta          `json:"meta"`
}

// CreateVersionRequest registra una nueva versión de un archivo.
type CreateVersionRequest struct {
	Nombre string `json:"nombre"`
	Tamano int64  `json:"tamano"`
}

// VersionResponse una versión del archivo.
type VersionResponse struct {
	ID        string    `json:"id"`
	ArchivoID string    `json:"archivoId"`
	Numero    int       `json:"numero"`
	Nombre    string    `json:"nombre"`
	Tamano    int64     `json:"tamano"`
	CreatedAt time.Time `json:"createdAt"`
}
