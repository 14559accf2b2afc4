package echoapi_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etasha-dev/scheduler/core/trainer"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.createTrainer(t, "Awa Diop", "awa@etasha.org", trainer.RoleTrainer, trainer.StatusActive)
	env.createTrainer(t, "Gone Guy", "gone@etasha.org", trainer.RoleTrainer, trainer.StatusInactive)

	tests := []struct {
		name     string
		body     map[string]string
		wantCode int
		wantMsg  string
	}{
		{
			name:     "unknown email is a 404",
			body:     map[string]string{"email": "nobody@etasha.org", "password": "Secret123!"},
			wantCode: http.StatusNotFound,
			wantMsg:  "no account found with this email",
		},
		{
			name:     "deactivated account is a 403 even with a bad password",
			body:     map[string]string{"email": "gone@etasha.org", "password": "wrong"},
			wantCode: http.StatusForbidden,
			wantMsg:  "account deactivated",
		},
		{
			name:     "bad password is a 400",
			body:     map[string]string{"email": "awa@etasha.org", "password": "wrong"},
			wantCode: http.StatusBadRequest,
			wantMsg:  "authentication failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/v1/trainers/login", "", tt.body)
			checkHTTPErr(t, rec, tt.wantCode, tt.wantMsg)
		})
	}

	t.Run("missing credentials fail validation", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/trainers/login", "", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("email match is case insensitive", func(t *testing.T) {
		body := map[string]string{"email": "Awa@ETASHA.org", "password": "Secret123!"}
		rec := env.do(t, http.MethodPost, "/v1/trainers/login", "", body)
		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

		var resp struct {
			Token string `json:"token"`
		}
		decodeJSON(t, rec, &resp)
		require.NotEmpty(t, resp.Token)

		// the issued token must be accepted on authed endpoints
		rec = env.do(t, http.MethodGet, "/v1/trainers", resp.Token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestTokenRefresh(t *testing.T) {
	env := newTestEnv(t)
	tr := env.createTrainer(t, "Awa Diop", "awa@etasha.org", trainer.RoleTrainer, trainer.StatusActive)

	rec := env.do(t, http.MethodPost, "/v1/trainers/token-refresh", env.token(t, tr), nil)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decodeJSON(t, rec, &resp)
	assert.NotEmpty(t, resp.Token)

	t.Run("deactivated trainer cannot refresh", func(t *testing.T) {
		gone := env.createTrainer(t, "Gone Guy", "gone@etasha.org", trainer.RoleTrainer, trainer.StatusInactive)
		rec := env.do(t, http.MethodPost, "/v1/trainers/token-refresh", env.token(t, gone), nil)
		checkHTTPErr(t, rec, http.StatusForbidden, "account deactivated")
	})
}

func TestTrainerAPI(t *testing.T) {
	env := newTestEnv(t)
	boss := env.createTrainer(t, "Sam Boss", "sam@etasha.org", trainer.RoleScheduler, trainer.StatusActive)
	grunt := env.createTrainer(t, "Gil Grunt", "gil@etasha.org", trainer.RoleTrainer, trainer.StatusActive)
	bossToken := env.token(t, boss)
	gruntToken := env.token(t, grunt)

	t.Run("auth is required", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/trainers", "", nil)
		checkHTTPErr(t, rec, http.StatusUnauthorized, errMissingToken.Error)
	})

	t.Run("plain trainers cannot create", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/trainers", gruntToken, trainer.NewTrainer{})
		checkHTTPErr(t, rec, http.StatusForbidden, "permission denied")
	})

	t.Run("schedulers can create", func(t *testing.T) {
		body := trainer.NewTrainer{
			Name:            "New Guy",
			Email:           "new@etasha.org",
			Password:        "Secret123!",
			PasswordConfirm: "Secret123!",
		}
		rec := env.do(t, http.MethodPost, "/v1/trainers", bossToken, body)
		require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

		var tr trainer.Trainer
		decodeJSON(t, rec, &tr)
		assert.Equal(t, "New Guy", tr.Name)
		assert.Equal(t, "new@etasha.org", tr.Email)
		assert.Equal(t, trainer.RoleTrainer, tr.Role) // default role
		assert.Equal(t, trainer.StatusActive, tr.Status)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		body := trainer.NewTrainer{
			Name:            "Copy Cat",
			Email:           "gil@etasha.org",
			Password:        "Secret123!",
			PasswordConfirm: "Secret123!",
		}
		rec := env.do(t, http.MethodPost, "/v1/trainers", bossToken, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", rec.Body.String())
	})

	t.Run("retrieve", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, fmt.Sprintf("/v1/trainers/%d", grunt.ID), gruntToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var tr trainer.Trainer
		decodeJSON(t, rec, &tr)
		assert.Equal(t, grunt.Email, tr.Email)
	})

	t.Run("retrieve unknown id", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/trainers/12345", gruntToken, nil)
		checkHTTPErr(t, rec, http.StatusNotFound, "trainer not found")
	})

	t.Run("update keeps omitted fields", func(t *testing.T) {
		body := trainer.UpdateTrainer{Name: "Gil T. Grunt"}
		rec := env.do(t, http.MethodPut, fmt.Sprintf("/v1/trainers/%d", grunt.ID), bossToken, body)
		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

		var tr trainer.Trainer
		decodeJSON(t, rec, &tr)
		assert.Equal(t, "Gil T. Grunt", tr.Name)
		assert.Equal(t, grunt.Email, tr.Email)
		assert.Equal(t, grunt.Role, tr.Role)
	})

	t.Run("self-delete is forbidden", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, fmt.Sprintf("/v1/trainers/%d", boss.ID), bossToken, nil)
		checkHTTPErr(t, rec, http.StatusForbidden, "permission denied")
	})

	t.Run("delete", func(t *testing.T) {
		victim := env.createTrainer(t, "Vic Tim", "vic@etasha.org", trainer.RoleTrainer, trainer.StatusActive)
		rec := env.do(t, http.MethodDelete, fmt.Sprintf("/v1/trainers/%d", victim.ID), bossToken, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = env.do(t, http.MethodGet, fmt.Sprintf("/v1/trainers/%d", victim.ID), bossToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
