// Package bootstrap siembra el estado mínimo del sistema: los recursos de
// acceso a la API de administración, el rol admin con todos los grants, y el
// primer usuario administrador.
package bootstrap

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/dropDatabas3/janus/internal/domain/repository"
	"github.com/dropDatabas3/janus/internal/http/router"
	"github.com/dropDatabas3/janus/internal/observability/logger"
	"github.com/dropDatabas3/janus/internal/security/password"
)

// AdminBootstrapConfig contiene la configuración del bootstrap de admin.
type AdminBootstrapConfig struct {
	Store  repository.Store
	Hasher password.Hasher

	SkipPrompt    bool   // Modo no interactivo (testing / contenedores)
	AdminUsername string // Username pre-cargado (opcional, o env JANUS_ADMIN_USER)
	AdminPassword string // Password pre-cargado (opcional, o env JANUS_ADMIN_PASSWORD)
}

const adminRoleName = "admin"

// accessResources son los recursos que protegen la API de administración.
var accessResources = []string{
	router.ResourceUsersAccess,
	router.ResourceRolesAccess,
	router.ResourceResourcesAccess,
}

// CheckAndCreateAdmin verifica si existe el rol admin. Si no existe, siembra
// los recursos de acceso, crea el rol con todos los grants y da de alta el
// primer usuario administrador (por env o por prompt interactivo).
func CheckAndCreateAdmin(ctx context.Context, cfg AdminBootstrapConfig) error {
	log := logger.L().With(logger.Component("bootstrap"))

	if hasAdminRole(ctx, cfg.Store) {
		log.Debug("admin role detected, skipping bootstrap")
		return nil
	}

	username := cfg.AdminUsername
	if username == "" {
		username = os.Getenv("JANUS_ADMIN_USER")
	}
	plaintext := cfg.AdminPassword
	if plaintext == "" {
		plaintext = os.Getenv("JANUS_ADMIN_PASSWORD")
	}

	if username == "" || plaintext == "" {
		if cfg.SkipPrompt {
			return fmt.Errorf("bootstrap: se requieren AdminUsername y AdminPassword en modo no interactivo")
		}
		var err error
		username, plaintext, err = promptAdminCredentials()
		if err != nil {
			return fmt.Errorf("bootstrap: prompt de credenciales: %w", err)
		}
	}

	if err := seedAdmin(ctx, cfg.Store, cfg.Hasher, username, plaintext); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	log.Info("admin user created", logger.Username(username))
	return nil
}

// hasAdminRole busca el rol admin por nombre en el listado de roles.
func hasAdminRole(ctx context.Context, store repository.Store) bool {
	roles, err := store.ListRoles(ctx)
	if err != nil {
		// En error asumimos que no hay bootstrap pendiente: el arranque
		// igual va a fallar más adelante si la base no responde.
		return true
	}
	for _, r := range roles {
		if r.Name == adminRoleName {
			return true
		}
	}
	return false
}

// seedAdmin crea recursos de acceso, rol admin, grants y el primer usuario.
// Cada paso tolera ErrConflict: un bootstrap parcial anterior se retoma.
func seedAdmin(ctx context.Context, store repository.Store, hasher password.Hasher, username, plaintext string) error {
	desc := "acceso a la API de administración"
	resourceIDs := make([]int64, 0, len(accessResources))
	for _, path := range accessResources {
		id, err := store.CreateResource(ctx, &repository.Resource{Path: path, Description: &desc})
		if err != nil {
			if !errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("crear recurso %s: %w", path, err)
			}
			id, err = findResourceID(ctx, store, path)
			if err != nil {
				return err
			}
		}
		resourceIDs = append(resourceIDs, id)
	}

	roleDesc := "administrador del sistema"
	roleID, err := store.CreateRole(ctx, &repository.Role{Name: adminRoleName, Description: &roleDesc})
	if err != nil {
		return fmt.Errorf("crear rol admin: %w", err)
	}

	for _, rid := range resourceIDs {
		if err := store.LinkResourceRole(ctx, rid, roleID); err != nil && !errors.Is(err, repository.ErrConflict) {
			return fmt.Errorf("vincular recurso %d al rol admin: %w", rid, err)
		}
	}

	digest, err := hasher.Hash(plaintext)
	if err != nil {
		return fmt.Errorf("hash del password: %w", err)
	}
	userID, err := store.CreateUser(ctx, &repository.User{Username: username, PasswordHash: digest})
	if err != nil {
		return fmt.Errorf("crear usuario admin: %w", err)
	}

	if err := store.LinkUserRole(ctx, userID, roleID); err != nil && !errors.Is(err, repository.ErrConflict) {
		return fmt.Errorf("asignar rol admin: %w", err)
	}

	return nil
}

func findResourceID(ctx context.Context, store repository.Store, path string) (int64, error) {
	resources, err := store.ListResources(ctx)
	if err != nil {
		return 0, err
	}
	for _, res := range resources {
		if res.Path == path {
			return res.ID, nil
		}
	}
	return 0, fmt.Errorf("recurso %s no encontrado tras conflicto", path)
}

// promptAdminCredentials pide username y password por stdin (password oculto).
func promptAdminCredentials() (username, plaintext string, err error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Admin Username: ")
	username, err = reader.ReadString('\n')
	if err != nil {
		return "", "", err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return "", "", fmt.Errorf("username no puede estar vacío")
	}

	fmt.Print("Admin Password (min 10 chars): ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", "", err
	}
	plaintext = string(passwordBytes)
	fmt.Println()

	if len(plaintext) < 10 {
		return "", "", fmt.Errorf("el password debe tener al menos 10 caracteres")
	}

	fmt.Print("Confirm Password: ")
	confirmBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", "", err
	}
	fmt.Println()

	if plaintext != string(confirmBytes) {
		return "", "", fmt.Errorf("los passwords no coinciden")
	}

	return username, plaintext, nil
}
