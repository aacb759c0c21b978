// Package authz resuelve permisos efectivos de un usuario dentro de una
// empresa. La resolución consulta tres fuentes en orden: permisos directos del
// usuario, roles de empresa vigentes y roles de sistema. La ausencia de un
// permiso es denegación implícita; no existen permisos negativos.
package authz

import (
	"context"
	"fmt"
	"time"

	"github.com/gestium/gestium-api/internal/domain/entity"
	"github.com/gestium/gestium-api/internal/domain/repository"
)

// Resolver determina si un usuario puede ejecutar (recurso, acción) en una empresa.
type Resolver struct {
	permisoRepo    repository.PermisoRepository
	rolRepo        repository.RolRepository
	asignacionRepo repository.AsignacionRepository
	now            func() time.Time
}

// NewResolver construye el resolver con los puertos de persistencia.
func NewResolver(
	permisoRepo repository.PermisoRepository,
	rolRepo repository.RolRepository,
	asignacionRepo repository.AsignacionRepository,
) *Resolver {
	return &Resolver{
		permisoRepo:    permisoRepo,
		rolRepo:        rolRepo,
		asignacionRepo: asignacionRepo,
		now:            time.Now,
	}
}

// WithClock reemplaza el reloj del resolver. Solo para tests.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// HasPermission resuelve el permiso (recurso, acción) del usuario en la empresa.
//
// Orden de resolución:
//  1. Permisos directos del usuario.
//  2. Roles de empresa con asignación vigente, en orden de creación de la
//     asignación; se omiten los roles fuera de su ventana de vigencia o cuyo
//     horario no cubre la hora actual.
//  3. Roles de sistema asignados al usuario.
//
// Si ninguna fuente otorga el permiso, se deniega.
func (r *Resolver) HasPermission(ctx context.Context, usuarioID, empresaID, recurso, accion string) (bool, error) {
	if usuarioID == "" || empresaID == "" || recurso == "" || accion == "" {
		return false, nil
	}
	now := r.now()

	// 1) Permisos directos
	directos, err := r.permisoRepo.ListDirectosByUsuario(usuarioID, empresaID)
	if err != nil {
		return false, fmt.Errorf("permisos directos: %w", err)
	}
	for _, p := range directos {
		if p.Recurso == recurso && p.Accion == accion {
			return true, nil
		}
	}

	// 2) Roles de empresa
	asignaciones, err := r.asignacionRepo.ListActivasByUsuario(usuarioID, empresaID)
	if err != nil {
		return false, fmt.Errorf("asignaciones de empresa: %w", err)
	}
	ok, err := r.buscarEnRoles(asignaciones, recurso, accion, now)
	if err != nil || ok {
		return ok, err
	}

	// 3) Roles de sistema
	sistema, err := r.asignacionRepo.ListActivasSistema(usuarioID)
	if err != nil {
		return false, fmt.Errorf("asignaciones de sistema: %w", err)
	}
	return r.buscarEnRoles(sistema, recurso, accion, now)
}

// buscarEnRoles recorre asignaciones en orden y devuelve el primer match.
func (r *Resolver) buscarEnRoles(asignaciones []*entity.UsuarioRol, recurso, accion string, now time.Time) (bool, error) {
	for _, a := range asignaciones {
		if !a.Activa(now) {
			continue
		}
		rol, err := r.rolRepo.GetByID(a.RolID)
		if err != nil {
			return false, fmt.Errorf("rol %s: %w", a.RolID, err)
		}
		if rol == nil || rol.Estado != "active" {
			continue
		}
		if !rolVigente(rol, now) {
			continue
		}
		if !dentroDeHorario(rol, now) {
			continue
		}
		permisos, err := r.permisoRepo.ListByRol(rol.ID)
		if err != nil {
			return false, fmt.Errorf("permisos del rol %s: %w", rol.ID, err)
		}
		for _, p := range permisos {
			if p.Recurso == recurso && p.Accion == accion {
				return true, nil
			}
		}
	}
	return false, nil
}

// rolVigente verifica la ventana de vigencia del rol (fechas absolutas).
func rolVigente(rol *entity.Rol, now time.Time) bool {
	if rol.FechaInicio != nil && now.Before(*rol.FechaInicio) {
		return false
	}
	if rol.FechaFin != nil && now.After(*rol.FechaFin) {
		return false
	}
	return true
}

// dentroDeHorario verifica que la hora local actual caiga dentro del horario
// diario del rol. Un rol sin horario aplica todo el día.
func dentroDeHorario(rol *entity.Rol, now time.Time) bool {
	if rol.HorarioInicio == nil || rol.HorarioFin == nil {
		return true
	}
	inicio, err := MinutosDelDia(*rol.HorarioInicio)
	if err != nil {
		return false
	}
	fin, err := MinutosDelDia(*rol.HorarioFin)
	if err != nil {
		return false
	}
	actual := now.Hour()*60 + now.Minute()
	return actual >= inicio && actual <= fin
}

// MinutosDelDia convierte "HH:MM" a minutos desde medianoche. El formato es
// estricto: exactamente dos dígitos, dos puntos, dos dígitos.
func MinutosDelDia(hhmm string) (int, error) {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0, fmt.Errorf("horario inválido %q", hhmm)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if hhmm[i] < '0' || hhmm[i] > '9' {
			return 0, fmt.Errorf("horario inválido %q", hhmm)
		}
	}
	h := int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	m := int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("horario inválido %q", hhmm)
	}
	return h*60 + m, nil
}
