package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-registry/internal/router"
)

func TestHTTP_EndToEnd_TaxonomyAndOwnership(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// 1) Registrar owner, otro user y un admin
	ownerID := createUser(t, ts.URL, map[string]any{
		"username": "ana", "email": "ana@example.com", "password": "s3cret",
	})
	otherID := createUser(t, ts.URL, map[string]any{
		"username": "leo", "email": "leo@example.com", "password": "s3cret",
	})
	adminID := createUser(t, ts.URL, map[string]any{
		"username": "root", "email": "root@example.com", "password": "s3cret", "role": "admin",
	})

	// 2) Crear pet type Dog
	typeID := createResource(t, ts.URL, "/pet-types", ownerID, "", map[string]any{
		"name": "Dog", "limbs_number": 4,
	})

	// 3) Duplicado => 400 nombrando el campo
	{
		st, body := doReq(t, ts.URL, "POST", "/pet-types", ownerID, "", map[string]any{
			"name": "Dog", "limbs_number": 4,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 duplicate pet type, got %d body=%s", st, string(body))
		}
		assertFieldError(t, body, "name")
	}

	// 4) Crear breed Labrador
	breedID := createResource(t, ts.URL, "/breeds", ownerID, "", map[string]any{
		"name": "Labrador", "color": "gold", "pet_type_id": typeID,
	})

	// 5) Breed con pet_type inexistente => 400
	{
		st, body := doReq(t, ts.URL, "POST", "/breeds", ownerID, "", map[string]any{
			"name": "Siamese", "color": "cream", "pet_type_id": "00000000-0000-0000-0000-000000000000",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 bad reference, got %d body=%s", st, string(body))
		}
		assertFieldError(t, body, "pet_type_id")
	}

	// 6) Crear pet Rex como ana => owner queda fijado al requester
	petID := createResource(t, ts.URL, "/pets", ownerID, "", map[string]any{
		"name": "Rex", "breed_id": breedID,
	})
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID, ownerID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get own pet, got %d body=%s", st, string(body))
		}
		var resp struct {
			OwnerID string `json:"owner_id"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.OwnerID != ownerID {
			t.Fatalf("expected owner %s, got %s", ownerID, resp.OwnerID)
		}
	}

	// 7) Otro user no-privilegiado => 403
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID, otherID, "", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 get pet by non-owner, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/pets/"+petID, otherID, "", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 delete pet by non-owner, got %d", st)
		}
	}

	// 8) Admin accede sin ser owner
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID, adminID, "admin", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get pet by admin, got %d", st)
		}
	}

	// 9) Pet types y breeds no tienen owner: solo admin pasa el object-level check
	{
		st, _ := doReq(t, ts.URL, "GET", "/pet-types/"+typeID, ownerID, "", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 get pet type by regular user, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/pet-types/"+typeID, adminID, "admin", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get pet type by admin, got %d", st)
		}
	}

	// 10) Borrar el type cascadea a breed y pet
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/pet-types/"+typeID, adminID, "admin", nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete pet type, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/breeds/"+breedID, adminID, "admin", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 breed after cascade, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/pets/"+petID, adminID, "admin", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 pet after cascade, got %d", st)
		}
	}
}

func TestHTTP_LoginFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	userID := createUser(t, ts.URL, map[string]any{
		"username": "ana", "email": "ana@example.com", "password": "s3cret",
	})

	// Credenciales malas => 401
	{
		st, _ := doReq(t, ts.URL, "POST", "/login", "", "", map[string]any{
			"username": "ana", "password": "wrong",
		})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 bad credentials, got %d", st)
		}
	}

	// Login ok => token + id + email
	var token string
	{
		st, body := doReq(t, ts.URL, "POST", "/login", "", "", map[string]any{
			"username": "ana", "password": "s3cret",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
		}
		var resp struct {
			Token string `json:"token"`
			ID    string `json:"id"`
			Email string `json:"email"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Token == "" || resp.ID != userID || resp.Email != "ana@example.com" {
			t.Fatalf("unexpected login response: %+v", resp)
		}
		token = resp.Token
	}

	// El token sirve como Bearer para el resto de la API
	{
		req, err := http.NewRequest("GET", ts.URL+"/users/"+userID, nil)
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)

		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("do request: %v", err)
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 get self with token, got %d", res.StatusCode)
		}
	}

	// Sin token ni headers dev => 401
	{
		st, _ := doReq(t, ts.URL, "GET", "/users/"+userID, "", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without auth, got %d", st)
		}
	}
}

func TestHTTP_UserUniquenessAndOwnership(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	u1 := createUser(t, ts.URL, map[string]any{
		"username": "ana", "email": "ana@example.com", "password": "s3cret",
	})
	u2 := createUser(t, ts.URL, map[string]any{
		"username": "leo", "email": "leo@example.com", "password": "s3cret",
	})

	// username duplicado => 400 "username"
	{
		st, body := doReq(t, ts.URL, "POST", "/users", "", "", map[string]any{
			"username": "ana", "email": "nueva@example.com", "password": "x",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 duplicate username, got %d body=%s", st, string(body))
		}
		assertFieldError(t, body, "username")
	}

	// email duplicado => 400 "email"
	{
		st, body := doReq(t, ts.URL, "POST", "/users", "", "", map[string]any{
			"username": "nueva", "email": "ana@example.com", "password": "x",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 duplicate email, got %d body=%s", st, string(body))
		}
		assertFieldError(t, body, "email")
	}

	// u2 no puede ver ni tocar el perfil de u1
	{
		st, _ := doReq(t, ts.URL, "GET", "/users/"+u1, u2, "", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 get other user, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/users/"+u1, u2, "", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 delete other user, got %d", st)
		}
	}

	// u1 sí ve su propio perfil, y el password nunca sale
	{
		st, body := doReq(t, ts.URL, "GET", "/users/"+u1, u1, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get self, got %d", st)
		}
		var raw map[string]any
		_ = json.Unmarshal(body, &raw)
		if _, ok := raw["password"]; ok {
			t.Fatal("password must not be serialized")
		}
		if _, ok := raw["password_hash"]; ok {
			t.Fatal("password_hash must not be serialized")
		}
	}

	// Update de username de u2 al de u1 => 400 "username"
	{
		st, body := doReq(t, ts.URL, "PATCH", "/users/"+u2, u2, "", map[string]any{
			"username": "ana",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 patch duplicate username, got %d body=%s", st, string(body))
		}
		assertFieldError(t, body, "username")
	}
}

func TestHTTP_PartialUpdate_LeavesOtherFieldsUntouched(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	adminID := createUser(t, ts.URL, map[string]any{
		"username": "root", "email": "root@example.com", "password": "s3cret", "role": "admin",
	})

	typeID := createResource(t, ts.URL, "/pet-types", adminID, "admin", map[string]any{
		"name": "Spider", "limbs_number": 8,
	})

	// PATCH solo limbs_number
	{
		st, body := doReq(t, ts.URL, "PATCH", "/pet-types/"+typeID, adminID, "admin", map[string]any{
			"limbs_number": 6,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch, got %d body=%s", st, string(body))
		}
		var resp struct {
			Name        string `json:"name"`
			LimbsNumber int    `json:"limbs_number"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Name != "Spider" || resp.LimbsNumber != 6 {
			t.Fatalf("expected Spider/6, got %+v", resp)
		}
	}

	// PUT pisa los campos enviados
	{
		st, body := doReq(t, ts.URL, "PUT", "/pet-types/"+typeID, adminID, "admin", map[string]any{
			"name": "Tarantula", "limbs_number": 8,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 put, got %d body=%s", st, string(body))
		}
		var resp struct {
			Name        string `json:"name"`
			LimbsNumber int    `json:"limbs_number"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Name != "Tarantula" || resp.LimbsNumber != 8 {
			t.Fatalf("expected Tarantula/8, got %+v", resp)
		}
	}
}

func TestHTTP_CreateRejectsMissingFields(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// users: faltan email y password
	{
		st, body := doReq(t, ts.URL, "POST", "/users", "", "", map[string]any{
			"username": "ana",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 missing fields, got %d", st)
		}
		assertFieldError(t, body, "email")
		assertFieldError(t, body, "password")
	}

	// pet-types: falta limbs_number
	{
		st, body := doReq(t, ts.URL, "POST", "/pet-types", "someone", "", map[string]any{
			"name": "Dog",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 missing limbs_number, got %d", st)
		}
		assertFieldError(t, body, "limbs_number")
	}

	// pet-types: limbs_number negativo
	{
		st, body := doReq(t, ts.URL, "POST", "/pet-types", "someone", "", map[string]any{
			"name": "Dog", "limbs_number": -1,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 negative limbs_number, got %d", st)
		}
		assertFieldError(t, body, "limbs_number")
	}
}

func createUser(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/users", "", "", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create user, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create user: missing id body=%s", string(body))
	}
	return resp.ID
}

func createResource(t *testing.T, baseURL, path, debugUserID, debugRole string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, debugUserID, debugRole, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create %s: missing id body=%s", path, string(body))
	}
	return resp.ID
}

func assertFieldError(t *testing.T, body []byte, field string) {
	t.Helper()

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("field errors: invalid json body=%s", string(body))
	}
	if _, ok := resp.Errors[field]; !ok {
		t.Fatalf("expected field error for %q, body=%s", field, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path, debugUserID, debugRole string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}
	if debugRole != "" {
		req.Header.Set("X-Debug-User-Role", debugRole)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
