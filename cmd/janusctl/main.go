// janusctl es el CLI de administración de janus: opera contra la API HTTP.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	Token     string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func main() {
	var (
		baseURL = envOr("JANUS_URL", "http://localhost:8080")
		token   = envOr("JANUS_TOKEN", "")
		out     = envOr("JANUS_OUT", "text")
		timeout = 30 * time.Second
	)

	root := &cobra.Command{
		Use:   "janusctl",
		Short: "CLI de administración para janus",
	}

	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base de la API (env JANUS_URL)")
	root.PersistentFlags().StringVar(&token, "token", token, "Bearer token de admin (env JANUS_TOKEN)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	httpClient := &http.Client{Timeout: timeout}
	cl := &client{BaseURL: baseURL, Token: token, OutFormat: out, HTTP: httpClient}

	// ─── token ───

	var loginUser, loginPass string
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Obtener un token con username/password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if loginUser == "" || loginPass == "" {
				return fmt.Errorf("--username y --password son requeridos")
			}
			b, _ := json.Marshal(map[string]string{"username": loginUser, "password": loginPass})
			status, body, err := cl.do("POST", "/v1/token", b)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("token fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	tokenCmd.Flags().StringVar(&loginUser, "username", "", "Username")
	tokenCmd.Flags().StringVar(&loginPass, "password", "", "Password")

	var revokeToken string
	revokeCmd := &cobra.Command{
		Use:   "revoke",
		Short: "Revocar un token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if revokeToken == "" {
				return fmt.Errorf("--jwt es requerido")
			}
			b, _ := json.Marshal(map[string]string{"token": revokeToken})
			status, body, err := cl.do("POST", "/v1/revoke", b)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("revoke fallo: status=%d body=%s", status, string(body))
			}
			fmt.Println("ok")
			return nil
		},
	}
	revokeCmd.Flags().StringVar(&revokeToken, "jwt", "", "Token a revocar")

	var authzToken string
	var authzResources []string
	authorizeCmd := &cobra.Command{
		Use:   "authorize",
		Short: "Consultar grants de recursos para un token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if authzToken == "" || len(authzResources) == 0 {
				return fmt.Errorf("--jwt y --resource son requeridos")
			}
			b, _ := json.Marshal(map[string]any{"token": authzToken, "resources": authzResources})
			status, body, err := cl.do("POST", "/v1/authorize", b)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("authorize fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	authorizeCmd.Flags().StringVar(&authzToken, "jwt", "", "Token a consultar")
	authorizeCmd.Flags().StringArrayVar(&authzResources, "resource", nil, "Recurso a consultar (repetible)")

	// ─── entidades CRUD ───

	root.AddCommand(tokenCmd, revokeCmd, authorizeCmd)
	root.AddCommand(userCommands(cl))
	root.AddCommand(roleCommands(cl))
	root.AddCommand(resourceCommands(cl))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func userCommands(cl *client) *cobra.Command {
	usersCmd := &cobra.Command{Use: "users", Short: "Operaciones sobre usuarios"}

	var username, password, displayName string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Crear un usuario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("--username y --password son requeridos")
			}
			payload := map[string]any{"username": username, "password": password}
			if displayName != "" {
				payload["display_name"] = displayName
			}
			b, _ := json.Marshal(payload)
			return expectOK(cl, "POST", "/v1/users", b)
		},
	}
	createCmd.Flags().StringVar(&username, "username", "", "Username")
	createCmd.Flags().StringVar(&password, "password", "", "Password")
	createCmd.Flags().StringVar(&displayName, "display-name", "", "Nombre para mostrar (opcional)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Listar usuarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			return expectOK(cl, "GET", "/v1/users", nil)
		},
	}

	var userID, roleID int64
	grantCmd := &cobra.Command{
		Use:   "grant-role",
		Short: "Asignar un rol a un usuario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 || roleID <= 0 {
				return fmt.Errorf("--user y --role son requeridos")
			}
			b, _ := json.Marshal(map[string]int64{"id": roleID})
			return expectOK(cl, "POST", "/v1/users/"+strconv.FormatInt(userID, 10)+"/roles", b)
		},
	}
	grantCmd.Flags().Int64Var(&userID, "user", 0, "ID del usuario")
	grantCmd.Flags().Int64Var(&roleID, "role", 0, "ID del rol")

	revokeCmd := &cobra.Command{
		Use:   "revoke-role",
		Short: "Quitar un rol a un usuario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 || roleID <= 0 {
				return fmt.Errorf("--user y --role son requeridos")
			}
			path := "/v1/users/" + strconv.FormatInt(userID, 10) + "/roles/" + strconv.FormatInt(roleID, 10)
			return expectOK(cl, "DELETE", path, nil)
		},
	}
	revokeCmd.Flags().Int64Var(&userID, "user", 0, "ID del usuario")
	revokeCmd.Flags().Int64Var(&roleID, "role", 0, "ID del rol")

	usersCmd.AddCommand(createCmd, listCmd, grantCmd, revokeCmd)
	return usersCmd
}

func roleCommands(cl *client) *cobra.Command {
	rolesCmd := &cobra.Command{Use: "roles", Short: "Operaciones sobre roles"}

	var name, description string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Crear un rol",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name es requerido")
			}
			payload := map[string]any{"name": name}
			if description != "" {
				payload["description"] = description
			}
			b, _ := json.Marshal(payload)
			return expectOK(cl, "POST", "/v1/roles", b)
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "Nombre del rol")
	createCmd.Flags().StringVar(&description, "description", "", "Descripción (opcional)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Listar roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return expectOK(cl, "GET", "/v1/roles", nil)
		},
	}

	rolesCmd.AddCommand(createCmd, listCmd)
	return rolesCmd
}

func resourceCommands(cl *client) *cobra.Command {
	resourcesCmd := &cobra.Command{Use: "resources", Short: "Operaciones sobre recursos"}

	var path, description, value string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Crear un recurso",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				return fmt.Errorf("--path es requerido")
			}
			payload := map[string]any{"path": path}
			if description != "" {
				payload["description"] = description
			}
			if value != "" {
				payload["value"] = value
			}
			b, _ := json.Marshal(payload)
			return expectOK(cl, "POST", "/v1/resources", b)
		},
	}
	createCmd.Flags().StringVar(&path, "path", "", "Path del recurso (ej. reports:read)")
	createCmd.Flags().StringVar(&description, "description", "", "Descripción (opcional)")
	createCmd.Flags().StringVar(&value, "value", "", "Value opaco del grant (opcional)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Listar recursos",
		RunE: func(cmd *cobra.Command, args []string) error {
			return expectOK(cl, "GET", "/v1/resources", nil)
		},
	}

	var resourceID, roleID int64
	grantCmd := &cobra.Command{
		Use:   "grant-role",
		Short: "Vincular un rol a un recurso",
		RunE: func(cmd *cobra.Command, args []string) error {
			if resourceID <= 0 || roleID <= 0 {
				return fmt.Errorf("--resource y --role son requeridos")
			}
			b, _ := json.Marshal(map[string]int64{"id": roleID})
			return expectOK(cl, "POST", "/v1/resources/"+strconv.FormatInt(resourceID, 10)+"/roles", b)
		},
	}
	grantCmd.Flags().Int64Var(&resourceID, "resource", 0, "ID del recurso")
	grantCmd.Flags().Int64Var(&roleID, "role", 0, "ID del rol")

	resourcesCmd.AddCommand(createCmd, listCmd, grantCmd)
	return resourcesCmd
}

func expectOK(cl *client, method, path string, body []byte) error {
	status, respBody, err := cl.do(method, path, body)
	if err != nil {
		return err
	}
	if status/100 != 2 {
		return fmt.Errorf("%s %s fallo: status=%d body=%s", method, path, status, string(respBody))
	}
	if len(respBody) > 0 {
		cl.print(status, respBody)
	} else {
		fmt.Println("ok")
	}
	return nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
