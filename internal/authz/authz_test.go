package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAccess(t *testing.T) {
	owner := Subject{UserID: 7}
	assert.True(t, owner.CanAccess(7))
	assert.False(t, owner.CanAccess(8))

	admin := Subject{UserID: 1, Elevated: true}
	assert.True(t, admin.CanAccess(7))
	assert.True(t, admin.CanAccess(1))
}

func TestCanManage(t *testing.T) {
	assert.False(t, Subject{UserID: 7}.CanManage())
	assert.True(t, Subject{UserID: 7, Elevated: true}.CanManage())
}

func TestOwnerScope(t *testing.T) {
	assert.Equal(t, int64(7), Subject{UserID: 7}.OwnerScope())
	assert.Equal(t, int64(0), Subject{UserID: 7, Elevated: true}.OwnerScope())
}
