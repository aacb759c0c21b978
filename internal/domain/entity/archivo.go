package entity

import "time"

// MaxVersionesPorArchivo limita el historial de versiones de un archivo.
const MaxVersionesPorArchivo = 50

// Archivo es el registro de metadatos de un archivo subido. El contenido vive
// fuera del sistema; aquí solo se versiona y contabiliza el uso. La baja es
// lógica (Activo = false), nunca se elimina la fila.
type Archivo struct {
	ID          string
	EmpresaID   string
	Nombre      string
	MimeType    string
	Tamano      int64 // bytes
	EntidadTipo string // entidad dueña: "factura", "empresa", ...
	EntidadID   string
	Activo      bool
	Descargas   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ArchivoVersion es una versión del archivo. Numero es monotónico por archivo.
type ArchivoVersion struct {
	ID        string
	ArchivoID string
	Numero    int
	Nombre    string
	Tamano    int64
	CreatedAt time.Time
}
