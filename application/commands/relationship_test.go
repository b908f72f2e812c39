package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateRelationshipCommandValidate(t *testing.T) {
	valid := CreateRelationshipCommand{
		FromEntityID:     "e-1",
		ToEntityID:       "e-2",
		RelationshipType: "located_in",
	}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.RelationshipType = ""
	assert.Error(t, missing.Validate())

	selfLoop := valid
	selfLoop.ToEntityID = selfLoop.FromEntityID
	err := selfLoop.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "endpoints must differ")
}
