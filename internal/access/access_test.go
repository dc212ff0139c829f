package access

import (
	"testing"

	"github.com/sonar-libras/sonar/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestRequire(t *testing.T) {
	company := models.Session{ID: "1", Category: models.CategoryCompany}
	student := models.Session{ID: "2", Category: models.CategoryStudent}

	assert.ErrorIs(t, Require(models.Session{}), ErrUnauthenticated)
	assert.NoError(t, Require(student))
	assert.NoError(t, Require(company, models.CategoryCompany))
	assert.ErrorIs(t, Require(student, models.CategoryCompany), ErrWrongAccountCategory)
}

func TestDeny(t *testing.T) {
	company := models.Session{ID: "1", Category: models.CategoryCompany}
	candidate := models.Session{ID: "2", Category: models.CategoryCandidate}

	assert.ErrorIs(t, Deny(models.Session{}, models.CategoryCompany), ErrUnauthenticated)
	assert.ErrorIs(t, Deny(company, models.CategoryCompany), ErrWrongAccountCategory)
	assert.NoError(t, Deny(candidate, models.CategoryCompany))
}
