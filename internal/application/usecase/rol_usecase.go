package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gestium/gestium-api/internal/application/authz"
	"github.com/gestium/gestium-api/internal/application/dto"
	"github.com/gestium/gestium-api/internal/domain"
	"github.com/gestium/gestium-api/internal/domain/entity"
	"github.com/gestium/gestium-api/internal/domain/repository"
	"github.com/gestium/gestium-api/pkg/logger"
)

// horarioMaxConformeMinutos: un horario que supere este ancho se acepta pero
// se marca como no conforme (solo advertencia, nunca rechazo).
const horarioMaxConformeMinutos = 8 * 60

// RolUseCase casos de uso para roles, permisos de rol y asignaciones.
// Las validaciones se ejecutan como una lista ordenada de funciones explícitas
// compuestas en el punto de llamada, no como hooks heredados.
type RolUseCase struct {
	rolRepo        repository.RolRepository
	permisoRepo    repository.PermisoRepository
	asignacionRepo repository.AsignacionRepository
	log            *logger.Logger
}

// NewRolUseCase construye el caso de uso.
func NewRolUseCase(
	rolRepo repository.RolRepository,
	permisoRepo repository.PermisoRepository,
	asignacionRepo repository.AsignacionRepository,
	log *logger.Logger,
) *RolUseCase {
	return &RolUseCase{rolRepo: rolRepo, permisoRepo: permisoRepo, asignacionRepo: asignacionRepo, log: log}
}

// ── Pipeline de validación ────────────────────────────────────────────────────

type rolValidation func(*entity.Rol) error

func (uc *RolUseCase) validarNombreUnico(excluirID string) rolValidation {
	return func(rol *entity.Rol) error {
		if rol.Nombre == "" {
			return domain.ErrInvalidInput
		}
		existing, err := uc.rolRepo.GetByNombre(rol.EmpresaID, rol.Nombre)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != excluirID {
			return domain.ErrDuplicate
		}
		return nil
	}
}

func (uc *RolUseCase) validarLimiteRoles() rolValidation {
	return func(rol *entity.Rol) error {
		count, err := uc.rolRepo.CountByEmpresa(rol.EmpresaID)
		if err != nil {
			return err
		}
		if count >= entity.MaxRolesPorEmpresa {
			return domain.ErrLimiteRoles
		}
		return nil
	}
}

// validarHorario exige formato HH:MM, inicio < fin y ambos dentro de 06:00–23:00.
func validarHorario() rolValidation {
	return func(rol *entity.Rol) error {
		if rol.HorarioInicio == nil && rol.HorarioFin == nil {
			return nil
		}
		if rol.HorarioInicio == nil || rol.HorarioFin == nil {
			return domain.ErrInvalidInput
		}
		inicio, err := authz.MinutosDelDia(*rol.HorarioInicio)
		if err != nil {
			return domain.ErrInvalidInput
		}
		fin, err := authz.MinutosDelDia(*rol.HorarioFin)
		if err != nil {
			return domain.ErrInvalidInput
		}
		if inicio >= fin {
			return domain.ErrInvalidInput
		}
		min, _ := authz.MinutosDelDia(entity.HorarioMinimo)
		max, _ := authz.MinutosDelDia(entity.HorarioMaximo)
		if inicio < min || fin > max {
			return domain.ErrHorarioFuera
		}
		return nil
	}
}

// validarVigencia exige inicio < fin, fin no pasado y duración ≤ 5 años.
func validarVigencia(now time.Time) rolValidation {
	return func(rol *entity.Rol) error {
		if rol.FechaInicio == nil && rol.FechaFin == nil {
			return nil
		}
		if rol.FechaInicio == nil || rol.FechaFin == nil {
			return domain.ErrInvalidInput
		}
		if !rol.FechaInicio.Before(*rol.FechaFin) {
			return domain.ErrInvalidInput
		}
		if rol.FechaFin.Before(now) {
			return domain.ErrInvalidInput
		}
		if rol.FechaFin.After(rol.FechaInicio.AddDate(entity.VigenciaMaximaAnios, 0, 0)) {
			return domain.ErrInvalidInput
		}
		return nil
	}
}

func runValidations(rol *entity.Rol, checks ...rolValidation) error {
	for _, check := range checks {
		if err := check(rol); err != nil {
			return err
		}
	}
	return nil
}

// advertenciaHorario devuelve el texto de no conformidad si el horario supera
// las 8 horas. El rol se acepta igual.
func (uc *RolUseCase) advertenciaHorario(rol *entity.Rol) string {
	if rol.HorarioInicio == nil || rol.HorarioFin == nil {
		return ""
	}
	inicio, err1 := authz.MinutosDelDia(*rol.HorarioInicio)
	fin, err2 := authz.MinutosDelDia(*rol.HorarioFin)
	if err1 != nil || err2 != nil {
		return ""
	}
	if fin-inicio <= horarioMaxConformeMinutos {
		return ""
	}
	uc.log.Warn().
		Str("rol", rol.Nombre).
		Str("empresa_id", rol.EmpresaID).
		Str("horario", *rol.HorarioInicio+"-"+*rol.HorarioFin).
		Msg("horario del rol supera las 8 horas, no conforme")
	return "el horario supera las 8 horas recomendadas"
}

// ── CRUD de roles ─────────────────────────────────────────────────────────────

// Create crea un rol de empresa.
func (uc *RolUseCase) Create(empresaID string, in dto.CreateRolRequest) (*dto.RolResponse, error) {
	now := time.Now()
	rol := &entity.Rol{
		ID:            uuid.New().String(),
		EmpresaID:     empresaID,
		Nombre:        in.Nombre,
		Descripcion:   in.Descripcion,
		HorarioInicio: in.HorarioInicio,
		HorarioFin:    in.HorarioFin,
		FechaInicio:   in.FechaInicio,
		FechaFin:      in.FechaFin,
		Estado:        "active",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err := runValidations(rol,
		uc.validarNombreUnico(""),
		uc.validarLimiteRoles(),
		validarHorario(),
		validarVigencia(now),
	)
	if err != nil {
		return nil, err
	}
	if err := uc.rolRepo.Create(rol); err != nil {
		return nil, err
	}
	resp := toRolResponse(rol)
	resp.AdvertenciaHorario = uc.advertenciaHorario(rol)
	return resp, nil
}

// GetByID obtiene un rol verificando pertenencia a la empresa.
func (uc *RolUseCase) GetByID(empresaID, id string) (*dto.RolResponse, error) {
	rol, err := uc.rolRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rol == nil || (rol.EmpresaID != empresaID && !rol.EsSistema) {
		return nil, domain.ErrNotFound
	}
	return toRolResponse(rol), nil
}

// List lista los roles de la empresa con paginación.
func (uc *RolUseCase) List(empresaID string, page dto.PageRequest) (*dto.RolListResponse, error) {
	page.Normalize()
	list, err := uc.rolRepo.ListByEmpresa(empresaID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.rolRepo.CountByEmpresa(empresaID)
	if err != nil {
		return nil, err
	}
	data := make([]dto.RolResponse, 0, len(list))
	for _, r := range list {
		data = append(data, *toRolResponse(r))
	}
	return &dto.RolListResponse{
		Data: data,
		Meta: dto.NewPageMeta(total, page.Page, page.Limit),
	}, nil
}

// Update modifica un rol; solo se revalidan los campos que cambian.
func (uc *RolUseCase) Update(empresaID, id string, in dto.UpdateRolRequest) (*dto.RolResponse, error) {
	rol, err := uc.rolRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rol == nil || rol.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	var checks []rolValidation
	if in.Nombre != nil && *in.Nombre != rol.Nombre {
		rol.Nombre = *in.Nombre
		checks = append(checks, uc.validarNombreUnico(rol.ID))
	}
	if in.Descripcion != nil {
		rol.Descripcion = *in.Descripcion
	}
	if in.HorarioInicio != nil || in.HorarioFin != nil {
		rol.HorarioInicio = in.HorarioInicio
		rol.HorarioFin = in.HorarioFin
		checks = append(checks, validarHorario())
	}
	if in.FechaInicio != nil || in.FechaFin != nil {
		rol.FechaInicio = in.FechaInicio
		rol.FechaFin = in.FechaFin
		checks = append(checks, validarVigencia(now))
	}
	if in.Estado != nil {
		rol.Estado = *in.Estado
	}
	if err := runValidations(rol, checks...); err != nil {
		return nil, err
	}
	rol.UpdatedAt = now
	if err := uc.rolRepo.Update(rol); err != nil {
		return nil, err
	}
	resp := toRolResponse(rol)
	resp.AdvertenciaHorario = uc.advertenciaHorario(rol)
	return resp, nil
}

// Delete elimina un rol. Si existen asignaciones activas devuelve un error de
// conflicto que enumera cuántas lo bloquean.
func (uc *RolUseCase) Delete(empresaID, id string) error {
	rol, err := uc.rolRepo.GetByID(id)
	if err != nil {
		return err
	}
	if rol == nil || rol.EmpresaID != empresaID {
		return domain.ErrNotFound
	}
	activas, err := uc.asignacionRepo.CountActivasByRol(id)
	if err != nil {
		return err
	}
	if activas > 0 {
		return fmt.Errorf("%w: %d asignaciones activas", domain.ErrRolEnUso, activas)
	}
	return uc.rolRepo.Delete(id)
}

// ── Permisos de rol ───────────────────────────────────────────────────────────

// AsignarPermiso copia (recurso, acción) del catálogo al rol.
func (uc *RolUseCase) AsignarPermiso(empresaID, rolID string, in dto.AsignarPermisoRequest) (*dto.PermisoResponse, error) {
	rol, err := uc.rolRepo.GetByID(rolID)
	if err != nil {
		return nil, err
	}
	if rol == nil || rol.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	permiso, err := uc.permisoRepo.GetByID(in.PermisoID)
	if err != nil {
		return nil, err
	}
	if permiso == nil {
		return nil, domain.ErrNotFound
	}
	existentes, err := uc.permisoRepo.ListByRol(rolID)
	if err != nil {
		return nil, err
	}
	for _, p := range existentes {
		if p.PermisoID == permiso.ID {
			return nil, domain.ErrDuplicate
		}
	}
	rp := &entity.RolPermiso{
		ID:        uuid.New().String(),
		RolID:     rolID,
		PermisoID: permiso.ID,
		Recurso:   permiso.Recurso,
		Accion:    permiso.Accion,
		CreatedAt: time.Now(),
	}
	if err := uc.permisoRepo.AddToRol(rp); err != nil {
		return nil, err
	}
	return &dto.PermisoResponse{ID: permiso.ID, Recurso: rp.Recurso, Accion: rp.Accion}, nil
}

// RevocarPermiso quita un permiso del rol.
func (uc *RolUseCase) RevocarPermiso(empresaID, rolID, permisoID string) error {
	rol, err := uc.rolRepo.GetByID(rolID)
	if err != nil {
		return err
	}
	if rol == nil || rol.EmpresaID != empresaID {
		return domain.ErrNotFound
	}
	return uc.permisoRepo.RemoveFromRol(rolID, permisoID)
}

// ListPermisos lista los permisos asignados al rol.
func (uc *RolUseCase) ListPermisos(empresaID, rolID string) ([]dto.PermisoResponse, error) {
	rol, err := uc.rolRepo.GetByID(rolID)
	if err != nil {
		return nil, err
	}
	if rol == nil || (rol.EmpresaID != empresaID && !rol.EsSistema) {
		return nil, domain.ErrNotFound
	}
	list, err := uc.permisoRepo.ListByRol(rolID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PermisoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.PermisoResponse{ID: p.PermisoID, Recurso: p.Recurso, Accion: p.Accion})
	}
	return out, nil
}

// ── Permisos directos de usuario ─────────────────────────────────────────────

// ListCatalogo devuelve el catálogo completo de permisos del sistema.
func (uc *RolUseCase) ListCatalogo() ([]dto.PermisoResponse, error) {
	list, err := uc.permisoRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.PermisoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.PermisoResponse{
			ID:          p.ID,
			Recurso:     p.Recurso,
			Accion:      p.Accion,
			Descripcion: p.Descripcion,
		})
	}
	return out, nil
}

// GrantDirecto otorga un permiso del catálogo directamente al usuario, sin
// rol de por medio. El par (recurso, acción) debe existir en el catálogo.
func (uc *RolUseCase) GrantDirecto(empresaID, usuarioID string, in dto.PermisoDirectoRequest) (*dto.PermisoDirectoResponse, error) {
	if usuarioID == "" || in.Recurso == "" || in.Accion == "" {
		return nil, domain.ErrInvalidInput
	}
	permiso, err := uc.permisoRepo.GetByRecursoAccion(in.Recurso, in.Accion)
	if err != nil {
		return nil, err
	}
	if permiso == nil {
		return nil, domain.ErrNotFound
	}
	existentes, err := uc.permisoRepo.ListDirectosByUsuario(usuarioID, empresaID)
	if err != nil {
		return nil, err
	}
	for _, p := range existentes {
		if p.Recurso == in.Recurso && p.Accion == in.Accion {
			return nil, domain.ErrDuplicate
		}
	}
	up := &entity.UsuarioPermiso{
		ID:        uuid.New().String(),
		UsuarioID: usuarioID,
		EmpresaID: empresaID,
		Recurso:   in.Recurso,
		Accion:    in.Accion,
		CreatedAt: time.Now(),
	}
	if err := uc.permisoRepo.GrantDirecto(up); err != nil {
		return nil, err
	}
	return toPermisoDirectoResponse(up), nil
}

// RevokeDirecto revoca un permiso directo del usuario.
func (uc *RolUseCase) RevokeDirecto(empresaID, usuarioID, recurso, accion string) error {
	if usuarioID == "" || recurso == "" || accion == "" {
		return domain.ErrInvalidInput
	}
	return uc.permisoRepo.RevokeDirecto(usuarioID, empresaID, recurso, accion)
}

// ListDirectos lista los permisos directos del usuario en la empresa.
func (uc *RolUseCase) ListDirectos(empresaID, usuarioID string) ([]dto.PermisoDirectoResponse, error) {
	list, err := uc.permisoRepo.ListDirectosByUsuario(usuarioID, empresaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PermisoDirectoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPermisoDirectoResponse(p))
	}
	return out, nil
}

// ── Asignaciones usuario-rol ─────────────────────────────────────────────────

// AsignarUsuario asigna el rol a un usuario con ventana opcional.
func (uc *RolUseCase) AsignarUsuario(empresaID, rolID string, in dto.AsignarRolRequest) (*dto.AsignacionResponse, error) {
	rol, err := uc.rolRepo.GetByID(rolID)
	if err != nil {
		return nil, err
	}
	if rol == nil || (rol.EmpresaID != empresaID && !rol.EsSistema) {
		return nil, domain.ErrNotFound
	}
	if in.UsuarioID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	inicio := now
	if in.FechaInicio != nil {
		inicio = *in.FechaInicio
	}
	if in.FechaFin != nil && !in.FechaFin.After(inicio) {
		return nil, domain.ErrInvalidInput
	}
	a := &entity.UsuarioRol{
		ID:          uuid.New().String(),
		UsuarioID:   in.UsuarioID,
		RolID:       rolID,
		EmpresaID:   empresaID,
		FechaInicio: inicio,
		FechaFin:    in.FechaFin,
		CreatedAt:   now,
	}
	if err := uc.asignacionRepo.Create(a); err != nil {
		return nil, err
	}
	return toAsignacionResponse(a, now), nil
}

// FinalizarAsignacion cierra una asignación vigente.
func (uc *RolUseCase) FinalizarAsignacion(empresaID, asignacionID string) error {
	a, err := uc.asignacionRepo.GetByID(asignacionID)
	if err != nil {
		return err
	}
	if a == nil || a.EmpresaID != empresaID {
		return domain.ErrNotFound
	}
	return uc.asignacionRepo.Finalizar(asignacionID, time.Now())
}

// ListAsignaciones lista asignaciones del rol.
func (uc *RolUseCase) ListAsignaciones(empresaID, rolID string, page dto.PageRequest) ([]dto.AsignacionResponse, error) {
	rol, err := uc.rolRepo.GetByID(rolID)
	if err != nil {
		return nil, err
	}
	if rol == nil || (rol.EmpresaID != empresaID && !rol.EsSistema) {
		return nil, domain.ErrNotFound
	}
	page.Normalize()
	list, err := uc.asignacionRepo.ListByRol(rolID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.AsignacionResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAsignacionResponse(a, now))
	}
	return out, nil
}

func toRolResponse(r *entity.Rol) *dto.RolResponse {
	return &dto.RolResponse{
		ID:            r.ID,
		EmpresaID:     r.EmpresaID,
		Nombre:        r.Nombre,
		Descripcion:   r.Descripcion,
		EsSistema:     r.EsSistema,
		HorarioInicio: r.HorarioInicio,
		HorarioFin:    r.HorarioFin,
		FechaInicio:   r.FechaInicio,
		FechaFin:      r.FechaFin,
		Estado:        r.Estado,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func toPermisoDirectoResponse(p *entity.UsuarioPermiso) *dto.PermisoDirectoResponse {
	return &dto.PermisoDirectoResponse{
		ID:        p.ID,
		UsuarioID: p.UsuarioID,
		Recurso:   p.Recurso,
		Accion:    p.Accion,
		CreatedAt: p.CreatedAt,
	}
}

func toAsignacionResponse(a *entity.UsuarioRol, now time.Time) *dto.AsignacionResponse {
	return &dto.AsignacionResponse{
		ID:          a.ID,
		UsuarioID:   a.UsuarioID,
		RolID:       a.RolID,
		EmpresaID:   a.EmpresaID,
		FechaInicio: a.FechaInicio,
		FechaFin:    a.FechaFin,
		Activa:      a.Activa(now),
	}
}
