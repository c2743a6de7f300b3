package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/thiagolazarin/datathon-fiap/internal/domain"
	"github.com/thiagolazarin/datathon-fiap/internal/model"
	"github.com/thiagolazarin/datathon-fiap/internal/service"
)

type fakeInferenceRepo struct {
	inserted []domain.Inference
	failWith error
}

func (f *fakeInferenceRepo) EnsureTable(context.Context) error { return nil }

func (f *fakeInferenceRepo) Insert(_ context.Context, inf domain.Inference) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.inserted = append(f.inserted, inf)
	return nil
}

func (f *fakeInferenceRepo) RecentPayloads(context.Context, time.Time) ([]map[string]any, error) {
	return nil, nil
}

func (f *fakeInferenceRepo) HourlyVolume(context.Context, time.Time) ([]domain.VolumePoint, error) {
	return nil, nil
}

func testArtifact() *model.Artifact {
	return &model.Artifact{
		Model: model.LinearModel{
			Bias:    0,
			Weights: map[string]float64{"tem_email": 5.0},
		},
		FeatureColumns: []string{"tem_email"},
		Threshold:      0.62,
		OperatingMode:  "prec80",
		Metadata:       map[string]any{"created_at": "2024-05-01"},
		Path:           "./artifacts/modelo_prec80.json",
	}
}

func newTestRouter(t *testing.T, repo *fakeInferenceRepo, jwtSecret string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	predicts := service.NewPredictService(testArtifact(), repo, nil, logger)
	return NewRouter(logger, NewHandlers(logger, predicts), nil, jwtSecret)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, &fakeInferenceRepo{}, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("body = %v; want status ok", body)
	}
	if _, err := time.Parse(time.RFC3339, body["time"].(string)); err != nil {
		t.Fatalf("time fora do formato RFC3339: %v", body["time"])
	}
}

func TestVersion(t *testing.T) {
	router := newTestRouter(t, &fakeInferenceRepo{}, "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["operating_mode"] != "prec80" {
		t.Fatalf("operating_mode = %v; want prec80", body["operating_mode"])
	}
	if body["threshold"] != 0.62 {
		t.Fatalf("threshold = %v; want 0.62", body["threshold"])
	}
	cols, ok := body["feature_columns"].([]any)
	if !ok || len(cols) != 1 || cols[0] != "tem_email" {
		t.Fatalf("feature_columns = %v", body["feature_columns"])
	}
}

func TestPredictApproved(t *testing.T) {
	repo := &fakeInferenceRepo{}
	router := newTestRouter(t, repo, "")

	payload := map[string]any{
		"features":            map[string]any{"tem_email": 1},
		"codigo_profissional": 31001,
	}
	data, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// sigmoid(5) ~ 0.993 > 0.62.
	if body["aprovado_pelo_modelo"] != true {
		t.Fatalf("aprovado_pelo_modelo = %v; want true", body["aprovado_pelo_modelo"])
	}
	score, ok := body["probabilidade_contratacao"].(float64)
	if !ok || score <= 0.62 {
		t.Fatalf("probabilidade = %v; want > 0.62", body["probabilidade_contratacao"])
	}
	if body["codigo_profissional"] != float64(31001) {
		t.Fatalf("codigo_profissional = %v; want 31001", body["codigo_profissional"])
	}

	if len(repo.inserted) != 1 {
		t.Fatalf("inference_log recebeu %d linhas; want 1", len(repo.inserted))
	}
	inf := repo.inserted[0]
	if inf.Decision != 1 || inf.ModelMode != "prec80" || inf.CodigoProfissional == nil || *inf.CodigoProfissional != 31001 {
		t.Fatalf("inferência logada = %+v", inf)
	}
}

func TestPredictRejected(t *testing.T) {
	router := newTestRouter(t, &fakeInferenceRepo{}, "")

	data := []byte(`{"features": {"tem_email": 0}}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// sigmoid(0) = 0.5 < 0.62.
	if body["aprovado_pelo_modelo"] != false {
		t.Fatalf("aprovado_pelo_modelo = %v; want false", body["aprovado_pelo_modelo"])
	}
	if body["codigo_profissional"] != nil {
		t.Fatalf("codigo_profissional = %v; want null", body["codigo_profissional"])
	}
}

func TestPredictMissingFeatures(t *testing.T) {
	router := newTestRouter(t, &fakeInferenceRepo{}, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
}

func TestPredictSurvivesLogFailure(t *testing.T) {
	repo := &fakeInferenceRepo{failWith: context.DeadlineExceeded}
	router := newTestRouter(t, repo, "")

	data := []byte(`{"features": {"tem_email": 1}}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("falha de log derrubou a predição: status = %d", w.Code)
	}
}

func TestPredictJWTProtection(t *testing.T) {
	const secret = "segredo-de-teste"
	router := newTestRouter(t, &fakeInferenceRepo{}, secret)
	body := []byte(`{"features": {"tem_email": 1}}`)

	// Sem token.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewReader(body))
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("sem token: status = %d; want 401", w.Code)
	}

	// Token assinado com outro segredo.
	bad := signToken(t, "outro-segredo")
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/predict", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+bad)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("token inválido: status = %d; want 401", w.Code)
	}

	// Token válido.
	good := signToken(t, secret)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/predict", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+good)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("token válido: status = %d; body = %s", w.Code, w.Body.String())
	}

	// Rotas de leitura seguem abertas.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("/health protegido indevidamente: status = %d", w.Code)
	}
}

func signToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "teste",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
