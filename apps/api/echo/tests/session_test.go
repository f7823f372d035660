package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/berrycrepe/choco-chip/apps/api/echo"
	"github.com/berrycrepe/choco-chip/core/user"
)

func Test_sessionApi_login(t *testing.T) {
	db.Reset()

	alice := createUser(t, "alice", "Alice", "alice@test.io", "s3cret", 2)
	legacy := user.User{ID: "oldie", Name: "Oldie", Email: "oldie@test.io", PasswordHash: "plain-pwd"}
	_, err := usrRepo.CreateUser(context.Background(), legacy)
	require.NoError(t, err)

	createProblem(1000, "A+B", "Bronze V", "math")
	createProblem(1001, "A-B", "Bronze IV", "math")
	solve(alice.ID, 1001, 1000, 1000)

	t.Run("errors", func(t *testing.T) {
		runHttpTests(t, []httpTest{
			{
				name: "blank fields", method: http.MethodPost, path: "/api/auth/login",
				body:     marchallObj(t, LoginRequest{Identifier: "  "}),
				wantCode: http.StatusBadRequest,
				wantData: marchallObj(t, httpErr{
					Message: "invalid request",
					Fields: map[string]string{
						"identifier": "this field is required",
						"password":   "this field is required",
					},
				}),
			},
			{
				name: "unknown account", method: http.MethodPost, path: "/api/auth/login",
				body:     marchallObj(t, LoginRequest{Identifier: "bob", Password: "s3cret"}),
				wantCode: http.StatusUnauthorized,
				wantData: marchallObj(t, httpErr{Message: "account not found"}),
			},
			{
				name: "wrong password", method: http.MethodPost, path: "/api/auth/login",
				body:     marchallObj(t, LoginRequest{Identifier: "alice", Password: "nope"}),
				wantCode: http.StatusUnauthorized,
				wantData: marchallObj(t, httpErr{Message: "wrong password"}),
			},
		})
	})

	t.Run("success", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/api/auth/login", marchallObj(t, LoginRequest{Identifier: " ALICE ", Password: "s3cret"}))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp SessionResponse
		unmarshal(t, rec, &resp)
		assert.True(t, resp.OK)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, NewAccount(alice, []int{1000, 1001}), resp.User)
	})

	t.Run("legacy plain text password", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/api/auth/login", marchallObj(t, LoginRequest{Identifier: "oldie", Password: "plain-pwd"}))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp SessionResponse
		unmarshal(t, rec, &resp)
		assert.Equal(t, "oldie", resp.User.ID)
		assert.Equal(t, "Oldie", resp.User.Handle, "handle falls back to the nickname")
		assert.Equal(t, []int{}, resp.User.SolvedProblemIDs)
	})
}

func Test_sessionApi_signup(t *testing.T) {
	db.Reset()
	createUser(t, "alice", "Alice", "alice@test.io", "s3cret")

	signup := func(id, email, nickname, pwd string) []byte {
		return marchallObj(t, user.NewUser{ID: id, Email: email, Nickname: nickname, Password: pwd})
	}
	conflict := func(field, msg string) []byte {
		return marchallObj(t, httpErr{Message: msg, Fields: map[string]string{field: msg}})
	}

	runHttpTests(t, []httpTest{
		{
			name: "required fields", method: http.MethodPost, path: "/api/auth/signup",
			body:     signup("", "", " ", ""),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "invalid request",
				Fields: map[string]string{
					"id":       "this field is required",
					"email":    "this field is required",
					"nickname": "this field is required",
					"password": "this field is required",
				},
			}),
		},
		{
			name: "invalid id", method: http.MethodPost, path: "/api/auth/signup",
			body:     signup("b!", "bob@test.io", "Bob", "pwd"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "invalid request",
				Fields:  map[string]string{"id": "only 3 to 24 letters, digits, '_' or '-' are allowed"},
			}),
		},
		{
			name: "blank password", method: http.MethodPost, path: "/api/auth/signup",
			body:     signup("bob", "bob@test.io", "Bob", "   "),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "invalid request",
				Fields:  map[string]string{"password": "this field cannot be blank"},
			}),
		},
		{
			name: "id taken", method: http.MethodPost, path: "/api/auth/signup",
			body:     signup("ALICE", "alice@test.io", "Alice", "pwd"),
			wantCode: http.StatusConflict,
			wantData: conflict("id", user.ErrIDExists.Error()),
		},
		{
			name: "email taken", method: http.MethodPost, path: "/api/auth/signup",
			body:     signup("bob", "Alice@Test.io", "Alice", "pwd"),
			wantCode: http.StatusConflict,
			wantData: conflict("email", user.ErrEmailExists.Error()),
		},
		{
			name: "nickname taken", method: http.MethodPost, path: "/api/auth/signup",
			body:     signup("bob", "bob@test.io", "alice", "pwd"),
			wantCode: http.StatusConflict,
			wantData: conflict("nickname", user.ErrNicknameExists.Error()),
		},
	})

	t.Run("success", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/api/auth/signup", signup(" bob ", "bob@test.io", " Bobby ", "pwd"))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp SessionResponse
		unmarshal(t, rec, &resp)
		assert.True(t, resp.OK)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, Account{
			ID:               "bob",
			Handle:           "Bobby",
			Email:            "bob@test.io",
			Nickname:         "Bobby",
			Division:         user.DefaultDivision,
			Rating:           user.DefaultRating,
			SolvedProblemIDs: []int{},
			BannerType:       user.BannerFreeGrid,
		}, resp.User)

		// the new account can log in right away
		req, rec = newRequest(http.MethodPost, "/api/auth/login", marchallObj(t, LoginRequest{Identifier: "bob", Password: "pwd"}))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func Test_sessionApi_refreshToken(t *testing.T) {
	db.Reset()
	alice := createUser(t, "alice", "Alice", "alice@test.io", "s3cret")
	ghost := user.User{ID: "ghost", Name: "Ghost"}

	runHttpTests(t, []httpTest{
		{
			name: "token required", method: http.MethodPost, path: "/api/auth/token-refresh",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "unknown user", method: http.MethodPost, path: "/api/auth/token-refresh", token: getToken(t, ghost),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Message: "user not authenticated"}),
		},
	})

	t.Run("success", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/auth/token-refresh", getToken(t, alice))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp TokenResponse
		unmarshal(t, rec, &resp)
		assert.True(t, resp.OK)
		assert.NotEmpty(t, resp.Token)
	})
}
