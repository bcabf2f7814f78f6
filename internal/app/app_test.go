package app_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"casos_backend/internal/app"
	"casos_backend/internal/config"
	"casos_backend/internal/logger"
	"casos_backend/internal/models"
	"casos_backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.InitWithWriter("test", io.Discard)
	os.Exit(m.Run())
}

type testServer struct {
	router    *gin.Engine
	db        *gorm.DB
	uploadDir string
	token     string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := config.Defaults()
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "test-secret"
	cfg.Storage.BasePath = filepath.Join(t.TempDir(), "uploads")

	db := testutil.NewTestDB(t)
	router, err := app.SetupRouter(cfg, db)
	require.NoError(t, err)

	srv := &testServer{router: router, db: db, uploadDir: cfg.Storage.BasePath}

	area := testutil.SeedArea(t, db, "Seguridad")
	rol := testutil.SeedRol(t, db, "Analista")
	testutil.SeedUser(t, db, "jperez", "secreto", area.ID, rol.ID)
	srv.token = srv.login(t, "jperez", "secreto")

	return srv
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) doJSON(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.do(req)
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()

	rec := s.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

type formFile struct {
	field   string
	name    string
	content []byte
}

func (s *testServer) upload(t *testing.T, fields map[string]string, files ...formFile) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/adjuntos/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	return s.do(req)
}

func (s *testServer) storedFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(s.uploadDir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.NotEmpty(t, env.Error.Message)
	return env
}

func TestBanner(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Seguimiento Casos API", rec.Body.String())
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := srv.do(req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	rec = srv.do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)
	area := testutil.SeedArea(t, srv.db, "Legal")
	rol := testutil.SeedRol(t, srv.db, "Revisor")

	rec := srv.doJSON(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"username":  "mlopez",
		"password":  "clave",
		"id_area":   area.ID,
		"id_rol":    rol.ID,
		"nombres":   "María",
		"apellidos": "López",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Повторная регистрация отклоняется
	rec = srv.doJSON(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"username":  "mlopez",
		"password":  "otra",
		"id_area":   area.ID,
		"id_rol":    rol.ID,
		"nombres":   "María",
		"apellidos": "López",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ALREADY_EXISTS", decodeError(t, rec).Error.Code)

	assert.NotEmpty(t, srv.login(t, "mlopez", "clave"))

	rec = srv.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "mlopez",
		"password": "mala",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Credenciales inválidas", decodeError(t, rec).Error.Message)
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.doJSON(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"username": "sinpassword",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decodeError(t, rec).Error.Code)
}

func TestCasosRequireToken(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.doJSON(t, http.MethodGet, "/api/casos", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	decodeError(t, rec)

	rec = srv.doJSON(t, http.MethodGet, "/api/casos", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetCasoNotFound(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.doJSON(t, http.MethodGet, "/api/casos/999", nil, srv.token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	decodeError(t, rec)

	rec = srv.doJSON(t, http.MethodGet, "/api/casos/abc", nil, srv.token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCasoLifecycle(t *testing.T) {
	srv := newTestServer(t)
	a1 := testutil.SeedArea(t, srv.db, "Operaciones")
	a2 := testutil.SeedArea(t, srv.db, "Calidad")

	rec := srv.doJSON(t, http.MethodPost, "/api/casos", map[string]interface{}{
		"titulo": "Derrame en planta",
		"tipo":   "Incidente",
		"areas":  []uint{a1.ID, a2.ID},
	}, srv.token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created struct {
		ID uint `json:"id_caso"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	rec = srv.doJSON(t, http.MethodPost, "/api/seguimientos", map[string]interface{}{
		"id_caso":           created.ID,
		"retroalimentacion": "Resuelto",
		"estado":            "Finalizado",
	}, srv.token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.doJSON(t, http.MethodGet, "/api/casos?estado=Finalizado", nil, srv.token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Operaciones, Calidad", list[0]["areas_asignadas"])
	assert.Equal(t, "Seguridad", list[0]["area_usuario"])

	rec = srv.doJSON(t, http.MethodGet, "/api/casos?estado=Cerrado", nil, srv.token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.doJSON(t, http.MethodGet, "/api/casos/"+itoa(created.ID), nil, srv.token)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail struct {
		Caso struct {
			Estado string `json:"estado"`
		} `json:"caso"`
		Seguimientos []struct {
			Usuario string `json:"usuario"`
		} `json:"seguimientos"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "Finalizado", detail.Caso.Estado)
	require.Len(t, detail.Seguimientos, 1)
	assert.Equal(t, "Pérez González Juan Carlos", detail.Seguimientos[0].Usuario)
}

func TestUpdateSeguimientoEmptyBody(t *testing.T) {
	srv := newTestServer(t)
	caso := testutil.SeedCaso(t, srv.db, "caso")
	seg := testutil.SeedSeguimiento(t, srv.db, caso.ID, 1, models.EstadoEnProceso)

	rec := srv.doJSON(t, http.MethodPut, "/api/seguimientos/"+itoa(seg.ID), map[string]interface{}{}, srv.token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.doJSON(t, http.MethodPut, "/api/seguimientos/"+itoa(seg.ID), map[string]string{"estado": ""}, srv.token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_OPERATION", decodeError(t, rec).Error.Code)

	var stored models.Seguimiento
	require.NoError(t, srv.db.First(&stored, "id_seguimiento = ?", seg.ID).Error)
	assert.Equal(t, models.EstadoEnProceso, stored.Estado)
	var storedCaso models.Caso
	require.NoError(t, srv.db.First(&storedCaso, "id_caso = ?", caso.ID).Error)
	assert.Equal(t, models.EstadoIniciado, storedCaso.Estado)

	rec = srv.doJSON(t, http.MethodPut, "/api/seguimientos/999", map[string]interface{}{}, srv.token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.doJSON(t, http.MethodDelete, "/api/seguimientos/"+itoa(seg.ID), nil, srv.token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Seguimiento eliminado")
}

func TestUploadSuccess(t *testing.T) {
	srv := newTestServer(t)
	caso := testutil.SeedCaso(t, srv.db, "caso")

	rec := srv.upload(t, map[string]string{"id_caso": itoa(caso.ID)},
		formFile{field: "file", name: "nota.txt", content: []byte("hola mundo")})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, strings.HasPrefix(resp.URL, "/uploads/"))
	assert.Len(t, srv.storedFiles(t), 1)

	// Файл отдается статикой
	rec = srv.do(httptest.NewRequest(http.MethodGet, resp.URL, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hola mundo", rec.Body.String())
}

func TestUploadRejections(t *testing.T) {
	srv := newTestServer(t)
	caso := testutil.SeedCaso(t, srv.db, "caso")
	owner := map[string]string{"id_caso": itoa(caso.ID)}
	small := []byte("x")

	t.Run("file too large", func(t *testing.T) {
		big := bytes.Repeat([]byte("a"), 10<<20+1)
		rec := srv.upload(t, owner, formFile{field: "file", name: "big.bin", content: big})
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("too many files", func(t *testing.T) {
		var files []formFile
		for i := 0; i < 6; i++ {
			files = append(files, formFile{field: "file", name: "f.txt", content: small})
		}
		rec := srv.upload(t, owner, files...)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unexpected field", func(t *testing.T) {
		rec := srv.upload(t, owner, formFile{field: "documento", name: "f.txt", content: small})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		rec := srv.upload(t, owner)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing owner", func(t *testing.T) {
		rec := srv.upload(t, nil, formFile{field: "file", name: "f.txt", content: small})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non integer owner", func(t *testing.T) {
		rec := srv.upload(t, map[string]string{"id_caso": "uno"}, formFile{field: "file", name: "f.txt", content: small})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown caso", func(t *testing.T) {
		rec := srv.upload(t, map[string]string{"id_caso": "999"}, formFile{field: "file", name: "f.txt", content: small})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	assert.Empty(t, srv.storedFiles(t))
	assert.Equal(t, int64(0), testutil.CountRows(t, srv.db, &models.Adjunto{}))
}

func TestUploadMetadataFailureCleansUp(t *testing.T) {
	srv := newTestServer(t)
	caso := testutil.SeedCaso(t, srv.db, "caso")
	testutil.FailCreates(t, srv.db, "Adjunto")

	rec := srv.upload(t, map[string]string{"id_caso": itoa(caso.ID)},
		formFile{field: "file", name: "nota.txt", content: []byte("hola")})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	decodeError(t, rec)

	assert.Empty(t, srv.storedFiles(t))
	assert.Equal(t, int64(0), testutil.CountRows(t, srv.db, &models.Adjunto{}))
}

func TestListAreas(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.doJSON(t, http.MethodGet, "/api/areas", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var areas []models.Area
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &areas))
	require.Len(t, areas, 1)
	assert.Equal(t, "Seguridad", areas[0].Nombre)

	rec = srv.doJSON(t, http.MethodPost, "/api/areas", map[string]string{"nombre": "Nueva"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateArea(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.doJSON(t, http.MethodPost, "/api/areas", map[string]string{
		"nombre":      "Mantenimiento",
		"descripcion": "Equipos y planta",
		"listaCorreo": "mant@example.com,jefe@example.com",
	}, srv.token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created struct {
		ID uint `json:"id_area"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	rec = srv.doJSON(t, http.MethodGet, "/api/areas", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var areas []models.Area
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &areas))
	require.Len(t, areas, 2)
	assert.Equal(t, created.ID, areas[1].ID)
	assert.Equal(t, "Mantenimiento", areas[1].Nombre)
	require.NotNil(t, areas[1].Descripcion)
	assert.Equal(t, "Equipos y planta", *areas[1].Descripcion)
	require.NotNil(t, areas[1].ListaCorreo)
	assert.Equal(t, "mant@example.com,jefe@example.com", *areas[1].ListaCorreo)

	rec = srv.doJSON(t, http.MethodPost, "/api/areas", map[string]string{"nombre": ""}, srv.token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decodeError(t, rec).Error.Code)
}

func TestRoles(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.doJSON(t, http.MethodPost, "/api/roles", map[string]string{
		"nombre":      "Supervisor",
		"descripcion": "Cierra casos",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created struct {
		ID uint `json:"id_rol"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	rec = srv.doJSON(t, http.MethodGet, "/api/roles", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var roles []models.Rol
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roles))
	require.Len(t, roles, 2)
	assert.Equal(t, "Analista", roles[0].Nombre)
	assert.Equal(t, "Supervisor", roles[1].Nombre)
	assert.Equal(t, created.ID, roles[1].ID)

	rec = srv.doJSON(t, http.MethodPost, "/api/roles", map[string]string{"nombre": ""}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int64(2), testutil.CountRows(t, srv.db, &models.Rol{}))
}

func TestSendEmailWithoutRelay(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.doJSON(t, http.MethodPost, "/api/email/send", map[string]string{
		"to":      "a@example.com",
		"subject": "Aviso",
		"text":    "hola",
	}, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Correo enviado correctamente")
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
