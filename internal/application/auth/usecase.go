package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/lavadero-pro/internal/domain"
	"github.com/tu-usuario/lavadero-pro/internal/domain/entity"
	"github.com/tu-usuario/lavadero-pro/internal/domain/repository"
	"github.com/tu-usuario/lavadero-pro/pkg/dto"
	"github.com/tu-usuario/lavadero-pro/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SuscripcionConfig instrucciones de pago que recibe un admin al darse de alta.
type SuscripcionConfig struct {
	AliasBancario string
	Monto         decimal.Decimal
	Dias          int
}

// AuthUseCase casos de uso de identidad: registro, login, sesiones por cookie
// y canje del puente OAuth.
type AuthUseCase struct {
	usuarioRepo  repository.UsuarioRepository
	lavaderoRepo repository.LavaderoRepository
	sesiones     SesionStore
	puente       PuenteOAuth
	txRunner     RegistroTxRunner
	jwtCfg       JWTConfig
	susCfg       SuscripcionConfig
	sesionTTL    time.Duration
	ahora        Reloj
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	usuarioRepo repository.UsuarioRepository,
	lavaderoRepo repository.LavaderoRepository,
	sesiones SesionStore,
	puente PuenteOAuth,
	txRunner RegistroTxRunner,
	jwtCfg JWTConfig,
	susCfg SuscripcionConfig,
	sesionTTL time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		usuarioRepo:  usuarioRepo,
		lavaderoRepo: lavaderoRepo,
		sesiones:     sesiones,
		puente:       puente,
		txRunner:     txRunner,
		jwtCfg:       jwtCfg,
		susCfg:       susCfg,
		sesionTTL:    sesionTTL,
		ahora:        time.Now,
	}
}

// ConReloj fija un reloj inyectado (pruebas).
func (uc *AuthUseCase) ConReloj(r Reloj) *AuthUseCase {
	uc.ahora = r
	return uc
}

// RegistrarCliente crea una cuenta final. El alias legado EMPLEADO se acepta en
// la entrada y se persiste normalizado como CLIENTE (decisión registrada en DESIGN.md).
func (uc *AuthUseCase) RegistrarCliente(in dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	rol := entity.Rol(in.Rol)
	if in.Rol == "" {
		rol = entity.RolCliente
	}
	if !rol.EsValido() || rol.Normalizar() != entity.RolCliente {
		return nil, domain.ErrEntradaInvalida
	}
	existing, _ := uc.usuarioRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &entity.Usuario{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Nombre:       in.Nombre,
		Rol:          entity.RolCliente,
		PasswordHash: string(hash),
		Activo:       true,
		CreatedAt:    uc.ahora(),
	}
	if err := uc.usuarioRepo.Create(u); err != nil {
		return nil, err
	}
	return ToUsuarioResponse(u), nil
}

// RegistrarAdmin da de alta Admin + Lavadero atómicamente. El lavadero nace en
// PENDIENTE_APROBACION; la respuesta incluye las instrucciones de pago.
func (uc *AuthUseCase) RegistrarAdmin(ctx context.Context, in dto.RegisterAdminRequest) (*dto.RegisterAdminResponse, error) {
	existing, _ := uc.usuarioRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.ahora()
	admin := &entity.Usuario{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Nombre:       in.Nombre,
		Rol:          entity.RolAdmin,
		PasswordHash: string(hash),
		Activo:       true,
		CreatedAt:    now,
	}
	lavadero := &entity.Lavadero{
		ID:               uuid.New().String(),
		AdminID:          admin.ID,
		Nombre:           in.Lavadero.Nombre,
		Direccion:        in.Lavadero.Direccion,
		Descripcion:      in.Lavadero.Descripcion,
		Estado:           entity.EstadoPendienteAprobacion,
		MontoSuscripcion: uc.susCfg.Monto,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err = uc.txRunner.RunRegistro(ctx, func(usuarios repository.UsuarioRepository, lavaderos repository.LavaderoRepository) error {
		if err := usuarios.Create(admin); err != nil {
			return err
		}
		return lavaderos.Create(lavadero)
	})
	if err != nil {
		return nil, err
	}
	return &dto.RegisterAdminResponse{
		Message:       "registro recibido: transferí la suscripción y subí el comprobante para habilitar tu lavadero",
		AliasBancario: uc.susCfg.AliasBancario,
		Monto:         uc.susCfg.Monto,
		Estado:        entity.EstadoPendienteAprobacion,
	}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := uc.usuarioRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNoAutorizado
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrNoAutorizado
	}
	if !u.Activo {
		return nil, domain.ErrCuentaInactiva
	}
	lavaderoID := ""
	if u.Rol.Normalizar() == entity.RolAdmin {
		if lav, err := uc.lavaderoRepo.GetByAdminID(u.ID); err == nil && lav != nil {
			lavaderoID = lav.ID
		}
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, lavaderoID, string(u.Rol), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *ToUsuarioResponse(u)}, nil
}

// CanjearSesionPuente consume el session id de un solo uso del puente OAuth,
// vincula (o crea) el usuario por su identidad externa y acuña una sesión
// propia. El orden canjear → acuñar → (cookie) lo completa el handler.
func (uc *AuthUseCase) CanjearSesionPuente(ctx context.Context, sessionID string) (*dto.SessionDataResponse, error) {
	if sessionID == "" {
		return nil, domain.ErrEntradaInvalida
	}
	perfil, err := uc.puente.Canjear(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("canjear sesión del puente: %w", err)
	}
	u, err := uc.vincularPerfil(perfil)
	if err != nil {
		return nil, err
	}
	sesion, err := uc.crearSesion(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &dto.SessionDataResponse{SessionToken: sesion.Token}, nil
}

// vincularPerfil busca por identidad externa, luego por email (vincula cuentas
// locales existentes) y crea un CLIENTE nuevo si no hay coincidencia.
func (uc *AuthUseCase) vincularPerfil(p *PerfilPuente) (*entity.Usuario, error) {
	if u, err := uc.usuarioRepo.GetByGoogleID(p.GoogleID); err != nil {
		return nil, err
	} else if u != nil {
		return u, nil
	}
	if u, err := uc.usuarioRepo.GetByEmail(p.Email); err != nil {
		return nil, err
	} else if u != nil {
		u.GoogleID = p.GoogleID
		if u.Picture == "" {
			u.Picture = p.Picture
		}
		if err := uc.usuarioRepo.Update(u); err != nil {
			return nil, err
		}
		return u, nil
	}
	u := &entity.Usuario{
		ID:        uuid.New().String(),
		Email:     p.Email,
		Nombre:    p.Nombre,
		Rol:       entity.RolCliente,
		GoogleID:  p.GoogleID,
		Picture:   p.Picture,
		Activo:    true,
		CreatedAt: uc.ahora(),
	}
	if err := uc.usuarioRepo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *AuthUseCase) crearSesion(ctx context.Context, usuarioID string) (*entity.Sesion, error) {
	now := uc.ahora()
	s := &entity.Sesion{
		Token:     uuid.New().String(),
		UsuarioID: usuarioID,
		CreadaEn:  now,
		ExpiraEn:  now.Add(uc.sesionTTL),
	}
	if err := uc.sesiones.Guardar(ctx, s); err != nil {
		return nil, fmt.Errorf("guardar sesión: %w", err)
	}
	return s, nil
}

// ValidarSesion resuelve el usuario de un token de sesión por cookie.
// Devuelve ErrSesionInvalida si el token no existe, expiró o el usuario ya no puede operar.
func (uc *AuthUseCase) ValidarSesion(ctx context.Context, token string) (*entity.Usuario, error) {
	if token == "" {
		return nil, domain.ErrSesionInvalida
	}
	s, err := uc.sesiones.Obtener(ctx, token)
	if err != nil || s == nil {
		return nil, domain.ErrSesionInvalida
	}
	if s.Expirada(uc.ahora()) {
		_ = uc.sesiones.Eliminar(ctx, token)
		return nil, domain.ErrSesionInvalida
	}
	u, err := uc.usuarioRepo.GetByID(s.UsuarioID)
	if err != nil || u == nil || !u.Activo {
		return nil, domain.ErrSesionInvalida
	}
	return u, nil
}

// ValidarBearer resuelve el usuario de un token bearer JWT con snapshot fresco de la DB.
func (uc *AuthUseCase) ValidarBearer(tokenString string) (*entity.Usuario, error) {
	userID, _, _, err := jwt.Parse(uc.jwtCfg.Secret, tokenString)
	if err != nil {
		return nil, domain.ErrSesionInvalida
	}
	u, err := uc.usuarioRepo.GetByID(userID)
	if err != nil || u == nil || !u.Activo {
		return nil, domain.ErrSesionInvalida
	}
	return u, nil
}

// Logout invalida la sesión por cookie si existe. Idempotente: un token
// desconocido no es un error.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := uc.sesiones.Eliminar(ctx, token); err != nil {
		return fmt.Errorf("eliminar sesión: %w", err)
	}
	return nil
}

// ToUsuarioResponse proyección de solo lectura (sin hash).
func ToUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	return &dto.UsuarioResponse{
		ID:        u.ID,
		Email:     u.Email,
		Nombre:    u.Nombre,
		Rol:       string(u.Rol),
		GoogleID:  u.GoogleID,
		Picture:   u.Picture,
		Activo:    u.Activo,
		CreatedAt: u.CreatedAt,
	}
}
