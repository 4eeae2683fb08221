package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/kozi/core/user"
	emailsvc "github.com/trezcool/kozi/services/email"
)

func Test_userApi_register(t *testing.T) {
	env := setup(t, time.Now().UTC())

	existing := createUser(t, env.usrRepo, "Taken", "takenuser", "taken@test.cd", "S3cret!pass", true)

	body := func(name, uname, email, pwd string) []byte {
		return marchallObj(t, map[string]string{
			"fullname": name,
			"username": uname,
			"email":    email,
			"password": pwd,
		})
	}

	tests := []httpTest{
		{
			name:     "empty body",
			body:     []byte("{}"),
			wantCode: http.StatusBadRequest,
			extra:    []string{"fullname", "username", "email", "password"},
		},
		{
			name:     "short username",
			body:     body("Awe Lol", "awe", "awe@test.cd", "S3cret!pass"),
			wantCode: http.StatusBadRequest,
			extra:    []string{"username"},
		},
		{
			name:     "weak password",
			body:     body("Awe Lol", "awelol", "awe@test.cd", "password"),
			wantCode: http.StatusBadRequest,
			extra:    []string{"password"},
		},
		{
			name:     "username taken",
			body:     body("Copy Cat", "takenuser", "copycat@test.cd", "S3cret!pass"),
			wantCode: http.StatusBadRequest,
			extra:    []string{"username"},
		},
		{
			name:     "email taken",
			body:     body("Copy Cat", "copycat", existing.Email, "S3cret!pass"),
			wantCode: http.StatusBadRequest,
			extra:    []string{"email"},
		},
		{
			name:     "ok",
			body:     body("Awe Lol", "AweLol", "awe@test.cd", "S3cret!pass"),
			wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sentCount := len(emailsvc.SentMessages)

			req, rec := newRequest(http.MethodPost, "/v1/users/register", tt.body)
			env.server.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCode == http.StatusCreated {
				var usr user.User
				if err := json.Unmarshal(rec.Body.Bytes(), &usr); err != nil {
					t.Fatalf("unmarshalling response failed: %v", err)
				}
				assert.NotEmpty(t, usr.ID)
				assert.Equal(t, "awelol", usr.Username) // lowercased
				assert.Equal(t, "awe@test.cd", usr.Email)
				assert.True(t, usr.IsActive)
				assert.False(t, usr.CertificateEligible)
				assert.Equal(t, sentCount+1, len(emailsvc.SentMessages), "expected a welcome email")
				return
			}

			var fldErrs map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &fldErrs); err != nil {
				t.Fatalf("unmarshalling response failed: %v, body: %s", err, rec.Body.String())
			}
			for _, field := range tt.extra.([]string) {
				assert.Contains(t, fldErrs, field)
			}
		})
	}
}

func Test_userApi_login(t *testing.T) {
	env := setup(t, time.Now().UTC())

	usr := createUser(t, env.usrRepo, "Awe Lol", "awelol", "awe@test.cd", "S3cret!pass", true)
	createUser(t, env.usrRepo, "Slacker", "slacker1", "slacker@test.cd", "S3cret!pass", false)

	body := func(uname, pwd string) []byte {
		return marchallObj(t, LoginRequest{Username: uname, Password: pwd})
	}

	tests := []httpTest{
		{
			name:     "with username",
			body:     body(usr.Username, "S3cret!pass"),
			wantCode: http.StatusOK,
		},
		{
			name:     "with email",
			body:     body(usr.Email, "S3cret!pass"),
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong password",
			body:     body(usr.Username, "nope"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name:     "unknown user",
			body:     body("ghost", "S3cret!pass"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name:     "deactivated account",
			body:     body("slacker1", "S3cret!pass"),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			env.server.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantCode, rec.Code)
				var res LoginResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
					t.Fatalf("unmarshalling response failed: %v", err)
				}
				assert.NotEmpty(t, res.Token)
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_me(t *testing.T) {
	env := setup(t, time.Now().UTC())

	usr := createUser(t, env.usrRepo, "Awe Lol", "awelol", "awe@test.cd", "S3cret!pass", true)

	tests := []httpTest{
		{
			name:     "auth required",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name:     "ok",
			token:    getToken(t, usr),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, usr),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/users/me", tt.token)
			env.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_refreshToken(t *testing.T) {
	env := setup(t, time.Now().UTC())

	usr := createUser(t, env.usrRepo, "Awe Lol", "awelol", "awe@test.cd", "S3cret!pass", true)

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/users/token-refresh")
		env.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ok", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/users/token-refresh", getToken(t, usr))
		env.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var res LoginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshalling response failed: %v", err)
		}
		assert.NotEmpty(t, res.Token)
	})
}
