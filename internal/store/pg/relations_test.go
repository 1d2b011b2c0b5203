package pg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Las queries de relación se arman desde el enum fijo de shapes; estos tests
// fijan el SQL generado para que un cambio accidental en el shape salte acá.
func TestRelationQuery_Shapes(t *testing.T) {
	assert.Equal(t,
		"SELECT s.id, s.name, s.description FROM user_roles j INNER JOIN roles s ON s.id = j.role_id WHERE j.user_id = $1 ORDER BY s.id;",
		relUserRoles.query(),
	)
	assert.Equal(t,
		"SELECT s.id, s.username, s.display_name, s.avatar FROM user_roles j INNER JOIN users s ON s.id = j.user_id WHERE j.role_id = $1 ORDER BY s.id;",
		relRoleUsers.query(),
	)
	assert.Equal(t,
		"SELECT s.id, s.path, s.description, s.value FROM resource_roles j INNER JOIN resources s ON s.id = j.resource_id WHERE j.role_id = $1 ORDER BY s.id;",
		relRoleResources.query(),
	)
	assert.Equal(t,
		"SELECT s.id, s.name, s.description FROM resource_roles j INNER JOIN roles s ON s.id = j.role_id WHERE j.resource_id = $1 ORDER BY s.id;",
		relResourceRoles.query(),
	)
}

func TestRelationQuery_SingleParameter(t *testing.T) {
	for _, rel := range []relation{relUserRoles, relRoleUsers, relRoleResources, relResourceRoles} {
		q := rel.query()
		assert.Contains(t, q, "$1")
		assert.NotContains(t, q, "$2")
	}
}
